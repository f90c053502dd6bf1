package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/platform/input"
)

func NewInputMonitor(mapper *input.Mapper, historySize int) *InputMonitor {
	return &InputMonitor{
		mapper:      mapper,
		historySize: max(historySize, 1),
		axisHistory: make(map[string][]float32),
	}
}

// Sample records the current value of every axis. Render calls it once per
// frame.
func (im *InputMonitor) Sample() {
	for _, axis := range im.mapper.Mappings().Axes {
		history, ok := im.axisHistory[axis.Name]
		if !ok {
			history = make([]float32, im.historySize)
			im.axisHistory[axis.Name] = history
		}
		v, _ := im.mapper.AxisValue(axis.Name)
		history[im.historyPos] = v
	}
	im.historyPos = (im.historyPos + 1) % im.historySize
}

// AxisHistory returns the ring of samples for an axis. The oldest sample is
// at the write position.
func (im *InputMonitor) AxisHistory(name string) []float32 {
	return im.axisHistory[name]
}

func (im *InputMonitor) Render() {
	if !imgui.BeginV("Input", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	im.Sample()
	mappings := im.mapper.Mappings()

	imgui.Text(fmt.Sprintf("Frames: %d  Handlers: %d", im.mapper.Frames(), im.mapper.HandlerCount()))
	imgui.Separator()

	if imgui.TreeNodeStr("Actions") {
		for _, action := range mappings.Actions {
			state := "up"
			if im.mapper.IsActionDown(action.Name) {
				state = "DOWN"
			}
			imgui.BulletText(fmt.Sprintf("%s: %s", action.Name, state))
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Axes") {
		for _, axis := range mappings.Axes {
			v, _ := im.mapper.AxisValue(axis.Name)
			imgui.Text(fmt.Sprintf("%s: %+.2f", axis.Name, v))
			if history := im.axisHistory[axis.Name]; len(history) > 0 {
				imgui.PlotLinesFloatPtr("##axis-"+axis.Name, &history[0], int32(len(history)))
			}
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Recent Events") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("InputEventTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Event")
			imgui.TableSetupColumn("Name")
			imgui.TableHeadersRow()

			events := im.mapper.RecentEvents()
			for i := len(events) - 1; i >= 0; i-- {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(events[i].Type.String())
				imgui.TableNextColumn()
				imgui.Text(events[i].Name)
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
