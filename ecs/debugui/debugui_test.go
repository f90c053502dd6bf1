package debugui_test

import (
	"reflect"
	"testing"

	"github.com/plus3/platform/app"
	"github.com/plus3/platform/ecs"
	"github.com/plus3/platform/ecs/debugui"
	"github.com/plus3/platform/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tag struct {
	Label string
	Speed float32
	Inner struct{ X int }
	Ptr   *int
	count int
}

func (*tag) Priority() int { return ecs.PriorityDefault }

type body struct{}

func (*body) Priority() int { return ecs.PriorityTransform }

func spawnAll(s *ecs.Spawner) (ecs.EntityID, ecs.EntityID, ecs.EntityID) {
	a := ecs.NewEntity(&tag{}, &body{})
	a.SetName("hero")
	b := ecs.NewEntity(&tag{})
	b.SetName("crate")
	c := ecs.NewEntity(&body{})
	c.SetName("wall")
	ids := [3]ecs.EntityID{s.Spawn(a), s.Spawn(b), s.Spawn(c)}
	s.ResolveRequests()
	return ids[0], ids[1], ids[2]
}

func TestEntityBrowserCache(t *testing.T) {
	s := ecs.NewSpawner(nil)
	hero, crate, wall := spawnAll(s)

	cache := debugui.NewEntityBrowserCache()
	require.True(t, cache.Refresh(s))
	assert.False(t, cache.Refresh(s), "nothing changed")
	require.Len(t, cache.Entities(), 3)

	first := cache.Entities()[0]
	assert.Equal(t, hero, first.ID)
	assert.Equal(t, "hero", first.Name)
	assert.Equal(t, []string{"*debugui_test.body", "*debugui_test.tag"}, first.ComponentTypes, "priority order")

	t.Run("filter", func(t *testing.T) {
		ids := func(infos []debugui.EntityInfo) []ecs.EntityID {
			var out []ecs.EntityID
			for _, info := range infos {
				out = append(out, info.ID)
			}
			return out
		}

		assert.Equal(t, []ecs.EntityID{hero, crate, wall}, ids(cache.Filter("", "")))
		assert.Equal(t, []ecs.EntityID{crate}, ids(cache.Filter("CRA", "")))
		assert.Equal(t, []ecs.EntityID{hero, crate}, ids(cache.Filter("", "*debugui_test.tag")))
		assert.Equal(t, []ecs.EntityID{hero}, ids(cache.Filter("hero", "*debugui_test.body")))
	})

	t.Run("sort", func(t *testing.T) {
		cache.SortBy(1, true)
		names := []string{}
		for _, info := range cache.Entities() {
			names = append(names, info.Name)
		}
		assert.Equal(t, []string{"crate", "hero", "wall"}, names)

		cache.SortBy(0, false)
		assert.Equal(t, wall, cache.Entities()[0].ID)
	})

	t.Run("rebuilt after a component is added", func(t *testing.T) {
		e, ok := s.Entity(wall)
		require.True(t, ok)
		e.AddComponent(&tag{})
		require.True(t, cache.Refresh(s))

		for _, info := range cache.Entities() {
			if info.ID == wall {
				assert.Equal(t, 2, info.ComponentCount)
			}
		}
	})

	t.Run("rebuilt after ticking changes", func(t *testing.T) {
		e, _ := s.Entity(hero)
		e.SetTicking(false)
		require.True(t, cache.Refresh(s))
		e.SetTicking(false)
		assert.False(t, cache.Refresh(s), "unchanged flag")

		for _, info := range cache.Entities() {
			if info.ID == hero {
				assert.False(t, info.Ticking)
			}
		}
	})

	t.Run("rebuilt after resolve", func(t *testing.T) {
		s.Destroy(crate)
		s.ResolveRequests()
		assert.True(t, cache.Refresh(s))
		assert.Len(t, cache.Entities(), 2)
	})
}

func TestEntityQuery(t *testing.T) {
	s := ecs.NewSpawner(nil)
	hero, crate, _ := spawnAll(s)

	q := debugui.NewEntityQuery(s)
	assert.Equal(t, []string{"*debugui_test.body", "*debugui_test.tag"}, q.ComponentTypes())
	assert.Empty(t, q.Matches(), "nothing selected")

	q.Select("*debugui_test.tag", true)
	matches := q.Matches()
	require.Len(t, matches, 2)
	assert.Equal(t, hero, matches[0].ID)
	assert.Equal(t, crate, matches[1].ID)

	q.Select("*debugui_test.body", true)
	require.Len(t, q.Matches(), 1)

	q.Select("*debugui_test.tag", false)
	assert.Len(t, q.Matches(), 2)
}

func TestComponentTypeViewer(t *testing.T) {
	s := ecs.NewSpawner(nil)
	spawnAll(s)
	browser := debugui.NewEntityBrowser(s, 10)

	tv := debugui.NewComponentTypeViewer(s, browser)
	tv.Refresh()
	types := tv.Types()
	require.Len(t, types, 2)
	for _, ts := range types {
		assert.Equal(t, 2, ts.EntityCount)
	}
	assert.Equal(t, 5, tv.FieldCount("*debugui_test.tag"))
	assert.Equal(t, 0, tv.FieldCount("*debugui_test.body"))

	browser.FilterByType("*debugui_test.tag")
	assert.Equal(t, ecs.InvalidEntityID, browser.Selected())
	browser.Select(3)
	assert.Equal(t, ecs.EntityID(3), browser.Selected())
}

func TestInputMonitorSample(t *testing.T) {
	const keyRight input.Key = 1
	m, err := input.Compile(input.Config{
		AxisMappings: map[string]input.AxisConfig{
			"horizontal": {Acceleration: 10, Deceleration: 10, Positive: []string{"RIGHT"}},
		},
	}, input.KeyNames{"RIGHT": keyRight})
	require.NoError(t, err)
	mapper := input.NewMapper(m, nil)

	mon := debugui.NewInputMonitor(mapper, 4)
	mon.Sample()
	mapper.Tick(0.05, input.PressedKeys{keyRight: true})
	mon.Sample()

	history := mon.AxisHistory("horizontal")
	require.Len(t, history, 4)
	assert.Equal(t, float32(0), history[0])
	assert.InDelta(t, 0.5, history[1], 1e-5)
	assert.Nil(t, mon.AxisHistory("vertical"))
}

func TestPerformanceStatsHistory(t *testing.T) {
	ps := debugui.NewPerformanceStats(app.New(nil, nil, nil, app.DefaultOptions()), 4)
	for range 4 {
		ps.Record(0.02)
	}
	assert.InDelta(t, 20, ps.AverageFrameTime(), 1e-4)

	ps.Record(0.06)
	assert.InDelta(t, 30, ps.AverageFrameTime(), 1e-4, "oldest sample overwritten")
}

func TestLayouts(t *testing.T) {
	l := debugui.NewLayouts()
	layout := l.Of(&tag{})
	assert.Equal(t, "*debugui_test.tag", layout.TypeName)

	fields := layout.Fields
	require.Len(t, fields, 5)
	assert.Equal(t, "Label", fields[0].Name)
	assert.True(t, fields[0].Exported)
	assert.Equal(t, reflect.Struct, fields[2].Type.Kind())
	assert.True(t, fields[3].Indirect)
	assert.Equal(t, reflect.TypeOf(0), fields[3].Type)
	assert.False(t, fields[4].Exported)

	assert.Equal(t, fields, l.Fields(reflect.TypeOf(tag{})), "pointer and value share an entry")
	assert.Empty(t, l.Fields(reflect.TypeOf(0)))

	t.Run("warm from the live set", func(t *testing.T) {
		l := debugui.NewLayouts()
		s := ecs.NewSpawner(nil)
		spawnAll(s)

		assert.Equal(t, 2, l.Warm(s))
		got, ok := l.ByName("*debugui_test.body")
		require.True(t, ok)
		assert.Empty(t, got.Fields)

		_, ok = l.ByName("*debugui_test.missing")
		assert.False(t, ok)
	})
}

func TestSpawnDebugUI(t *testing.T) {
	m, err := input.Compile(input.Config{}, input.KeyNames{})
	require.NoError(t, err)
	a := app.New(nil, input.NewMapper(m, nil), nil, app.DefaultOptions())

	e := debugui.SpawnDebugUI(a)
	assert.Equal(t, "debugui", e.Name())
	assert.Equal(t, 6, e.ComponentCount())
	assert.Equal(t, 1, a.Spawner.PendingSpawns())

	for c := range e.Components() {
		item, ok := c.(*debugui.ImguiItem)
		require.True(t, ok)
		assert.NotNil(t, item.Render)
	}
}
