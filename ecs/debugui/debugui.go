// Package debugui provides Dear ImGui debug windows for a running app.
// Windows are ordinary components: SpawnDebugUI attaches them to an entity
// and each one draws itself during render tick.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/platform/ecs"
	"github.com/plus3/platform/render"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Name   string
	Render func()
	Hidden bool
}

func (i *ImguiItem) Priority() int { return ecs.PriorityRender + 50 }

// RenderTick runs the render function. It must be called between the
// overlay's BeginFrame and EndFrame.
func (i *ImguiItem) RenderTick(e *ecs.Entity, dt float32, q *render.Queue) {
	if i.Hidden || i.Render == nil {
		return
	}
	i.Render()
}

// WantCaptureKeyboard reports whether ImGui is consuming keyboard input, for
// example while a text field has focus. An ImGui context must exist.
func WantCaptureKeyboard() bool {
	return imgui.CurrentIO().WantCaptureKeyboard()
}

// WantCaptureMouse reports whether ImGui is consuming mouse input.
func WantCaptureMouse() bool {
	return imgui.CurrentIO().WantCaptureMouse()
}
