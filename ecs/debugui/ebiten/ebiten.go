// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// It satisfies backend.Overlay.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the ImGui context and sizes the ebiten window.
// Window settings are not persisted to imgui.ini.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	b := ebitenbackend.NewEbitenBackend()
	b.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: b}
}

func (b *ImguiBackend) BeginFrame() { b.EbitenBackend.BeginFrame() }

func (b *ImguiBackend) EndFrame() { b.EbitenBackend.EndFrame() }

func (b *ImguiBackend) Draw(screen *ebiten.Image) { b.EbitenBackend.Draw(screen) }

func (b *ImguiBackend) Layout(w, h int) { b.EbitenBackend.Layout(w, h) }
