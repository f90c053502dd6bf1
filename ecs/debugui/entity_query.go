package debugui

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/platform/ecs"
)

func NewEntityQuery(spawner *ecs.Spawner) *EntityQuery {
	return &EntityQuery{
		spawner:                spawner,
		selectedComponentTypes: make(map[string]bool),
		cache:                  NewEntityBrowserCache(),
	}
}

// Select toggles a component type in the query.
func (eq *EntityQuery) Select(typeName string, selected bool) {
	if selected {
		eq.selectedComponentTypes[typeName] = true
	} else {
		delete(eq.selectedComponentTypes, typeName)
	}
}

// ComponentTypes lists every component type present in the live set.
func (eq *EntityQuery) ComponentTypes() []string {
	eq.cache.Refresh(eq.spawner)
	seen := make(map[string]bool)
	for _, info := range eq.cache.Entities() {
		for _, t := range info.ComponentTypes {
			seen[t] = true
		}
	}
	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Matches returns the entities carrying every selected type.
func (eq *EntityQuery) Matches() []EntityInfo {
	eq.cache.Refresh(eq.spawner)
	if len(eq.selectedComponentTypes) == 0 {
		return nil
	}

	var matching []EntityInfo
	for _, info := range eq.cache.Entities() {
		if eq.hasAllTypes(info) {
			matching = append(matching, info)
		}
	}
	return matching
}

func (eq *EntityQuery) hasAllTypes(info EntityInfo) bool {
	for required := range eq.selectedComponentTypes {
		if !slices.Contains(info.ComponentTypes, required) {
			return false
		}
	}
	return true
}

func (eq *EntityQuery) Render() {
	if !imgui.BeginV("Entity Query", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eq.cache.Refresh(eq.spawner)

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		clear(eq.selectedComponentTypes)
	}

	for _, compType := range eq.ComponentTypes() {
		selected := eq.selectedComponentTypes[compType]
		if imgui.Checkbox(compType, &selected) {
			eq.Select(compType, selected)
		}
	}

	imgui.Separator()

	if len(eq.selectedComponentTypes) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	matching := eq.Matches()
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matching)))

	if imgui.TreeNodeStr("Entity Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryEntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Entity ID")
			imgui.TableSetupColumn("Name")
			imgui.TableSetupColumn("All Components")
			imgui.TableHeadersRow()

			for _, info := range matching {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("%d", info.ID))

				imgui.TableSetColumnIndex(1)
				imgui.Text(info.Name)

				imgui.TableSetColumnIndex(2)
				imgui.Text(strings.Join(info.ComponentTypes, ", "))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
