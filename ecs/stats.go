package ecs

import (
	"cmp"
	"fmt"
	"slices"
)

// SpawnerStats is a snapshot of a spawner's bookkeeping.
type SpawnerStats struct {
	LiveEntities    int
	TickingEntities int
	PendingSpawns   int
	PendingDestroys int
	PendingDefers   int
	Generation      uint64
	LastID          EntityID
	ComponentCount  int

	// ComponentBreakdown is sorted by descending count, then type name.
	ComponentBreakdown []ComponentTypeStats
}

type ComponentTypeStats struct {
	TypeName    string
	Count       int
	EntityCount int
}

// CollectStats walks the live set. It allocates and is meant for debug
// overlays and reports, not for per-frame gameplay code.
func (s *Spawner) CollectStats() SpawnerStats {
	stats := SpawnerStats{
		LiveEntities:    len(s.entities),
		PendingSpawns:   len(s.spawnRequests),
		PendingDestroys: len(s.destroyRequests),
		PendingDefers:   len(s.defers),
		Generation:      s.generation,
		LastID:          s.nextID,
	}

	byType := make(map[string]*ComponentTypeStats)
	for _, e := range s.entities {
		if e.ticking {
			stats.TickingEntities++
		}
		seen := make(map[string]bool, e.ComponentCount())
		for c := range e.Components() {
			name := fmt.Sprintf("%T", c)
			ts, ok := byType[name]
			if !ok {
				ts = &ComponentTypeStats{TypeName: name}
				byType[name] = ts
			}
			ts.Count++
			if !seen[name] {
				seen[name] = true
				ts.EntityCount++
			}
			stats.ComponentCount++
		}
	}

	stats.ComponentBreakdown = make([]ComponentTypeStats, 0, len(byType))
	for _, ts := range byType {
		stats.ComponentBreakdown = append(stats.ComponentBreakdown, *ts)
	}
	slices.SortFunc(stats.ComponentBreakdown, func(a, b ComponentTypeStats) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.TypeName, b.TypeName)
	})
	return stats
}
