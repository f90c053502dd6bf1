package debugui

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/platform/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityID
	Name           string
	ComponentTypes []string
	ComponentCount int
	Ticking        bool
}

// EntityBrowserCache is a snapshot of the live set. It is rebuilt whenever
// the spawner's revision moves: a resolution, a component added to a live
// entity or a ticking toggle.
type EntityBrowserCache struct {
	entities       []EntityInfo
	lastRevision   uint64
	valid          bool
	sortColumn     int
	sortAscending  bool
}

func NewEntityBrowserCache() *EntityBrowserCache {
	return &EntityBrowserCache{sortAscending: true}
}

// Refresh rebuilds the snapshot if the live set may have changed. It reports
// whether it did.
func (c *EntityBrowserCache) Refresh(spawner *ecs.Spawner) bool {
	if c.valid && c.lastRevision == spawner.Revision() {
		return false
	}
	c.Rebuild(spawner)
	return true
}

func (c *EntityBrowserCache) Rebuild(spawner *ecs.Spawner) {
	c.entities = c.entities[:0]
	for e := range spawner.Entities() {
		types := make([]string, 0, e.ComponentCount())
		for comp := range e.Components() {
			types = append(types, fmt.Sprintf("%T", comp))
		}
		c.entities = append(c.entities, EntityInfo{
			ID:             e.ID(),
			Name:           e.Name(),
			ComponentTypes: types,
			ComponentCount: len(types),
			Ticking:        e.IsTicking(),
		})
	}
	c.lastRevision = spawner.Revision()
	c.valid = true
	c.sort()
}

func (c *EntityBrowserCache) Entities() []EntityInfo { return c.entities }

// SortBy orders the snapshot by column: 0 id, 1 name, 2 components, 3 count.
func (c *EntityBrowserCache) SortBy(column int, ascending bool) {
	c.sortColumn = column
	c.sortAscending = ascending
	c.sort()
}

func (c *EntityBrowserCache) sort() {
	sort.SliceStable(c.entities, func(i, j int) bool {
		a, b := c.entities[i], c.entities[j]
		var less bool

		switch c.sortColumn {
		case 1:
			less = a.Name < b.Name
		case 2:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 3:
			less = a.ComponentCount < b.ComponentCount
		default:
			less = a.ID < b.ID
		}

		if !c.sortAscending {
			return !less
		}
		return less
	})
}

// Filter returns the entities matching text, case-insensitively against id,
// name and component types, that also carry a component of typeName when it
// is not empty.
func (c *EntityBrowserCache) Filter(text, typeName string) []EntityInfo {
	if text == "" && typeName == "" {
		return c.entities
	}

	filtered := make([]EntityInfo, 0, len(c.entities))
	filterLower := strings.ToLower(text)

	for _, entity := range c.entities {
		if typeName != "" && !slices.Contains(entity.ComponentTypes, typeName) {
			continue
		}

		if text != "" {
			idStr := fmt.Sprintf("%d", entity.ID)
			nameStr := strings.ToLower(entity.Name)
			componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

			if !strings.Contains(idStr, filterLower) &&
				!strings.Contains(nameStr, filterLower) &&
				!strings.Contains(componentsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

func NewEntityBrowser(spawner *ecs.Spawner, maxEntitiesPerPage int) *EntityBrowser {
	return &EntityBrowser{
		spawner:            spawner,
		cache:              NewEntityBrowserCache(),
		maxEntitiesPerPage: max(maxEntitiesPerPage, 1),
	}
}

func (eb *EntityBrowser) Render() {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.cache.Refresh(eb.spawner)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterType = ""
	}
	imgui.SameLine()
	if imgui.Button("Refresh") {
		eb.cache.Rebuild(eb.spawner)
	}
	if eb.filterType != "" {
		imgui.Text("Type: " + eb.filterType)
	}

	filteredEntities := eb.cache.Filter(eb.filterText, eb.filterType)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.SortBy(int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionAscending)
			sortSpecs.SetSpecsDirty(false)
			filteredEntities = eb.cache.Filter(eb.filterText, eb.filterType)
		}

		startIdx := min(eb.currentPage*eb.maxEntitiesPerPage, len(filteredEntities))
		endIdx := min(startIdx+eb.maxEntitiesPerPage, len(filteredEntities))

		for _, entity := range filteredEntities[startIdx:endIdx] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedEntityID == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityID = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(entity.Name)

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.ComponentCount))
		}

		imgui.EndTable()
	}

	if len(filteredEntities) > eb.maxEntitiesPerPage {
		totalPages := (len(filteredEntities) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		eb.currentPage = min(eb.currentPage, totalPages-1)
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filteredEntities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		eb.currentPage = 0
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filteredEntities)))
	}

	imgui.End()
}

// Selected returns the selected entity id, or ecs.InvalidEntityID.
func (eb *EntityBrowser) Selected() ecs.EntityID {
	return eb.selectedEntityID
}

func (eb *EntityBrowser) Select(id ecs.EntityID) { eb.selectedEntityID = id }

// FilterByType limits the browser to entities carrying a component of the
// named type. An empty name clears the filter.
func (eb *EntityBrowser) FilterByType(typeName string) {
	eb.filterType = typeName
	eb.currentPage = 0
}
