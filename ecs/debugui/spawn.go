package debugui

import (
	"github.com/plus3/platform/app"
	"github.com/plus3/platform/ecs"
)

// SpawnDebugUI queues an entity carrying every debug window.
func SpawnDebugUI(a *app.App) *ecs.Entity {
	browser := NewEntityBrowser(a.Spawner, 100)

	items := []*ImguiItem{
		{Name: "entities", Render: browser.Render},
		{Name: "inspector", Render: NewComponentInspector(a.Spawner, browser).Render},
		{Name: "types", Render: NewComponentTypeViewer(a.Spawner, browser).Render},
		{Name: "query", Render: NewEntityQuery(a.Spawner).Render},
		{Name: "performance", Render: NewPerformanceStats(a, 120).Render},
	}
	if a.Input != nil {
		items = append(items, &ImguiItem{Name: "input", Render: NewInputMonitor(a.Input, 120).Render})
	}

	e := ecs.NewEntity()
	for _, item := range items {
		e.AddComponent(item)
	}
	e.SetName("debugui")
	a.Spawn(e)
	return e
}
