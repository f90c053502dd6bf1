package ecs

import (
	"iter"
	"slices"
	"sort"
	"strconv"

	"github.com/plus3/platform/render"
	"go.uber.org/zap"
)

// EntityID identifies an entity for its whole life. Ids are assigned by the
// Spawner when a spawn is requested and never reused.
type EntityID uint32

// InvalidEntityID is the id of an entity that was never spawned.
const InvalidEntityID EntityID = 0

func (id EntityID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Entity is an ordered bag of components. The component list is kept sorted
// by ascending priority; components with equal priority keep insertion order.
type Entity struct {
	id         EntityID
	name       string
	components []Component
	inPlay     bool
	ticking    bool
	spawner    *Spawner

	// Components added while a hook fan-out is running are inserted once
	// the fan-out returns.
	dispatching int
	deferred    []Component
}

// NewEntity creates a detached entity holding the given components.
func NewEntity(components ...Component) *Entity {
	e := &Entity{
		ticking:    true,
		components: make([]Component, 0, len(components)),
	}
	for _, c := range components {
		e.AddComponent(c)
	}
	return e
}

func (e *Entity) ID() EntityID { return e.id }

func (e *Entity) IsInPlay() bool { return e.inPlay }

// IsTicking reports whether Tick is dispatched to this entity. Physics and
// render ticks are unaffected.
func (e *Entity) IsTicking() bool { return e.ticking }

func (e *Entity) SetTicking(b bool) {
	if e.ticking != b && e.spawner != nil {
		e.spawner.touch()
	}
	e.ticking = b
}

// Name is a debug label; it defaults to "entity-<id>".
func (e *Entity) Name() string {
	if e.name == "" {
		return "entity-" + e.id.String()
	}
	return e.name
}

func (e *Entity) SetName(name string) { e.name = name }

// Spawner returns the spawner this entity was handed to, or nil while the
// entity is detached.
func (e *Entity) Spawner() *Spawner { return e.spawner }

// Destroy requests destruction of this entity at the next resolution. It
// reports false when the entity is not owned by a spawner.
func (e *Entity) Destroy() bool {
	if e.spawner == nil {
		return false
	}
	e.spawner.Destroy(e.id)
	return true
}

// Logger returns the owning spawner's logger tagged with this entity.
func (e *Entity) Logger() *zap.Logger {
	if e.spawner == nil {
		return zap.NewNop()
	}
	return e.spawner.log.With(zap.Uint32("entity", uint32(e.id)))
}

// AddComponent attaches c. When the entity is already in play c receives
// EnterPlay before it is attached.
func (e *Entity) AddComponent(c Component) {
	if e.inPlay {
		if h, ok := c.(EnterPlayer); ok {
			h.EnterPlay(e)
		}
	}
	if e.spawner != nil {
		e.spawner.touch()
	}
	if e.dispatching > 0 {
		e.deferred = append(e.deferred, c)
		return
	}
	e.insert(c)
}

// insert places c after every component with priority <= c's priority.
func (e *Entity) insert(c Component) {
	p := c.Priority()
	i := sort.Search(len(e.components), func(i int) bool {
		return e.components[i].Priority() > p
	})
	e.components = slices.Insert(e.components, i, c)
}

// Components yields the attached components in execution order.
func (e *Entity) Components() iter.Seq[Component] {
	return func(yield func(Component) bool) {
		for _, c := range e.components {
			if !yield(c) {
				return
			}
		}
	}
}

// ComponentCount returns the number of attached components.
func (e *Entity) ComponentCount() int {
	return len(e.components) + len(e.deferred)
}

func (e *Entity) EnterPlay() {
	e.inPlay = true
	e.dispatch(func(c Component) {
		if h, ok := c.(EnterPlayer); ok {
			h.EnterPlay(e)
		}
	})
}

func (e *Entity) ExitPlay() {
	e.inPlay = false
	e.dispatch(func(c Component) {
		if h, ok := c.(ExitPlayer); ok {
			h.ExitPlay(e)
		}
	})
}

func (e *Entity) Tick(dt float32) {
	e.dispatch(func(c Component) {
		if h, ok := c.(Ticker); ok {
			h.Tick(e, dt)
		}
	})
}

func (e *Entity) PhysicsTick(fixedDt float32) {
	e.dispatch(func(c Component) {
		if h, ok := c.(PhysicsTicker); ok {
			h.PhysicsTick(e, fixedDt)
		}
	})
}

func (e *Entity) RenderTick(dt float32, q *render.Queue) {
	e.dispatch(func(c Component) {
		if h, ok := c.(RenderTicker); ok {
			h.RenderTick(e, dt, q)
		}
	})
}

func (e *Entity) dispatch(fn func(Component)) {
	e.dispatching++
	for _, c := range e.components {
		fn(c)
	}
	e.dispatching--

	if e.dispatching == 0 && len(e.deferred) > 0 {
		pending := e.deferred
		e.deferred = nil
		for _, c := range pending {
			e.insert(c)
		}
	}
}
