package ecs

import "github.com/plus3/platform/render"

// Reserved priority bands. Lower values run first in every fan-out.
const (
	PriorityInput     = -150
	PriorityTransform = -100
	PriorityDefault   = 0
	PriorityRender    = 100
)

// Component is a unit of behaviour attached to exactly one Entity. Lifecycle
// hooks are optional: a component implements only the capability interfaces
// it needs and every other hook is a no-op.
//
// The owning entity is passed to each hook, so a component never holds a
// reference to an entity it is not attached to.
type Component interface {
	Priority() int
}

// EnterPlayer is implemented by components that react to entering the live set.
type EnterPlayer interface {
	EnterPlay(e *Entity)
}

// ExitPlayer is implemented by components that react to leaving the live set.
type ExitPlayer interface {
	ExitPlay(e *Entity)
}

// Ticker is implemented by components with per-frame gameplay logic.
type Ticker interface {
	Tick(e *Entity, dt float32)
}

// PhysicsTicker is implemented by components that run on the fixed step.
type PhysicsTicker interface {
	PhysicsTick(e *Entity, fixedDt float32)
}

// RenderTicker is implemented by components that produce draw requests.
type RenderTicker interface {
	RenderTick(e *Entity, dt float32, q *render.Queue)
}

// GetComponent returns the first component on e whose concrete type is T.
func GetComponent[T Component](e *Entity) (T, bool) {
	for _, c := range e.components {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	for _, c := range e.deferred {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// HasComponent reports whether e carries a component of type T.
func HasComponent[T Component](e *Entity) bool {
	_, ok := GetComponent[T](e)
	return ok
}
