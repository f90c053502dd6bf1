// Package components holds the stock components shipped with the runtime.
package components

import (
	"github.com/plus3/platform/ecs"
	"github.com/plus3/platform/vmath"
)

// Transform places an entity in the world. It keeps the position from before
// the latest move so renderers can interpolate.
type Transform struct {
	position     vmath.Vec2
	prevPosition vmath.Vec2
	scale        vmath.Vec2
}

func NewTransform() *Transform {
	return &Transform{scale: vmath.One()}
}

func (t *Transform) Priority() int { return ecs.PriorityTransform }

func (t *Transform) Position() vmath.Vec2     { return t.position }
func (t *Transform) PrevPosition() vmath.Vec2 { return t.prevPosition }
func (t *Transform) Scale() vmath.Vec2        { return t.scale }

// SetPosition moves to p. The current position becomes the previous one.
func (t *Transform) SetPosition(p vmath.Vec2) {
	t.prevPosition = t.position
	t.position = p
}

func (t *Transform) Translate(d vmath.Vec2) {
	t.SetPosition(t.position.Add(d))
}

// Teleport moves to p without leaving anything to interpolate from.
func (t *Transform) Teleport(p vmath.Vec2) {
	t.position = p
	t.prevPosition = p
}

func (t *Transform) SetScale(s vmath.Vec2) { t.scale = s }
