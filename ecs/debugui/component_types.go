package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/platform/ecs"
)

func NewComponentTypeViewer(spawner *ecs.Spawner, browser *EntityBrowser) *ComponentTypeViewer {
	return &ComponentTypeViewer{
		spawner:       spawner,
		browser:       browser,
		sortColumn:    1,
		sortAscending: false,
	}
}

// Refresh reloads the type breakdown when the live set or an entity in it
// has changed.
func (tv *ComponentTypeViewer) Refresh() {
	if tv.types != nil && tv.revision == tv.spawner.Revision() {
		return
	}
	tv.types = tv.spawner.CollectStats().ComponentBreakdown
	tv.revision = tv.spawner.Revision()
	layouts.Warm(tv.spawner)
	tv.sortTypes()
}

// FieldCount is the number of inspectable fields of the named component type,
// or -1 when no live entity carries it.
func (tv *ComponentTypeViewer) FieldCount(typeName string) int {
	layout, ok := layouts.ByName(typeName)
	if !ok {
		return -1
	}
	return len(layout.Fields)
}

func (tv *ComponentTypeViewer) Types() []ecs.ComponentTypeStats { return tv.types }

func (tv *ComponentTypeViewer) Render() {
	if !imgui.BeginV("Component Types", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	tv.Refresh()

	maxEntityCount := 0
	for _, ts := range tv.types {
		maxEntityCount = max(maxEntityCount, ts.EntityCount)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ComponentTypeTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Type")
		imgui.TableSetupColumn("Entities")
		imgui.TableSetupColumn("Instances")
		imgui.TableSetupColumn("Fields")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			tv.sortColumn = int(spec.ColumnIndex())
			tv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			tv.sortTypes()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, ts := range tv.types {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(ts.TypeName, tv.browser.filterType == ts.TypeName, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				tv.browser.FilterByType(ts.TypeName)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", ts.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(ts.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", ts.Count))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", tv.FieldCount(ts.TypeName)))
		}

		imgui.EndTable()
	}

	imgui.End()
}

func (tv *ComponentTypeViewer) sortTypes() {
	sort.SliceStable(tv.types, func(i, j int) bool {
		a, b := tv.types[i], tv.types[j]
		var less bool

		switch tv.sortColumn {
		case 0:
			less = a.TypeName < b.TypeName
		case 2:
			less = a.Count < b.Count
		case 3:
			less = tv.FieldCount(a.TypeName) < tv.FieldCount(b.TypeName)
		default:
			less = a.EntityCount < b.EntityCount
		}

		if !tv.sortAscending {
			return !less
		}
		return less
	})
}
