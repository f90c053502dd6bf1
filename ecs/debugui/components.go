package debugui

import (
	"github.com/plus3/platform/app"
	"github.com/plus3/platform/ecs"
	"github.com/plus3/platform/input"
)

type EntityBrowser struct {
	spawner            *ecs.Spawner
	cache              *EntityBrowserCache
	selectedEntityID   ecs.EntityID
	filterText         string
	filterType         string
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspector struct {
	spawner *ecs.Spawner
	browser *EntityBrowser
}

type ComponentTypeViewer struct {
	spawner       *ecs.Spawner
	browser       *EntityBrowser
	types         []ecs.ComponentTypeStats
	revision      uint64
	sortColumn    int
	sortAscending bool
}

type EntityQuery struct {
	spawner                *ecs.Spawner
	selectedComponentTypes map[string]bool
	cache                  *EntityBrowserCache
}

type InputMonitor struct {
	mapper      *input.Mapper
	historySize int
	axisHistory map[string][]float32
	historyPos  int
}

type PerformanceStats struct {
	app           *app.App
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}
