// Package game holds the playable content built on the runtime.
package game

import (
	"fmt"

	"github.com/plus3/platform/assets"
	"github.com/plus3/platform/components"
	"github.com/plus3/platform/ecs"
	"github.com/plus3/platform/input"
	"github.com/plus3/platform/vmath"
	"go.uber.org/zap"
)

// DefaultPlayerSpeed is in pixels per second at full axis deflection.
const DefaultPlayerSpeed = 240

var playerTexture = []string{"images", "entities", "player", "idle", "00.png"}

// PlayerController steers its entity's Transform from the horizontal and
// vertical axes of the sibling Input component.
type PlayerController struct {
	Speed float32

	move     vmath.Vec2
	bindings []binding
	log      *zap.Logger
}

type binding struct {
	name string
	id   input.BindingID
	axis bool
}

func NewPlayerController() *PlayerController {
	return &PlayerController{Speed: DefaultPlayerSpeed}
}

func (p *PlayerController) Priority() int { return ecs.PriorityDefault }

// Move is the latest axis input.
func (p *PlayerController) Move() vmath.Vec2 { return p.move }

func (p *PlayerController) EnterPlay(e *ecs.Entity) {
	p.log = e.Logger()
	in, ok := ecs.GetComponent[*components.Input](e)
	if !ok {
		p.log.Warn("player controller has no input component")
		return
	}

	p.bindAxis(in, "horizontal", func(v float32) { p.move.X = v })
	p.bindAxis(in, "vertical", func(v float32) { p.move.Y = v })
	for _, action := range []string{"left", "right", "up", "down", "jump"} {
		p.bindAction(in, action, input.Pressed)
		p.bindAction(in, action, input.Released)
	}
}

func (p *PlayerController) bindAxis(in *components.Input, name string, fn func(float32)) {
	id := in.BindAxis(name, fn)
	p.bindings = append(p.bindings, binding{name: name, id: id, axis: true})
}

func (p *PlayerController) bindAction(in *components.Input, name string, t input.EventType) {
	id := in.BindAction(name, t, func() {
		p.log.Debug("player action", zap.String("action", name), zap.Stringer("edge", t))
	})
	p.bindings = append(p.bindings, binding{name: name, id: id})
}

func (p *PlayerController) ExitPlay(e *ecs.Entity) {
	in, ok := ecs.GetComponent[*components.Input](e)
	if ok {
		for _, b := range p.bindings {
			if b.axis {
				in.UnbindAxis(b.name, b.id)
			} else {
				in.UnbindAction(b.name, b.id)
			}
		}
	}
	p.bindings = nil
	p.move = vmath.Zero()
}

func (p *PlayerController) Tick(e *ecs.Entity, dt float32) {
	if p.move == vmath.Zero() {
		return
	}
	t, ok := ecs.GetComponent[*components.Transform](e)
	if !ok {
		return
	}
	// Diagonals are capped to unit length.
	dir := p.move
	if dir.LenSqr() > 1 {
		dir = dir.Normalized()
	}
	t.Translate(dir.Scale(p.Speed * dt))
}

// NewPlayer assembles the player entity at spawn. The idle sprite is drawn at
// twice its size.
func NewPlayer(db *assets.Database, mapper *input.Mapper, spawn vmath.Vec2) (*ecs.Entity, error) {
	path, err := db.Path(playerTexture...)
	if err != nil {
		return nil, fmt.Errorf("player texture: %w", err)
	}
	tex, err := db.LoadTexture(path)
	if err != nil {
		return nil, fmt.Errorf("player texture: %w", err)
	}

	transform := components.NewTransform()
	transform.Teleport(spawn)

	image := components.NewImage(tex)
	image.SetScale(vmath.One().Scale(2))

	e := ecs.NewEntity(
		transform,
		NewPlayerController(),
		components.NewInput(mapper),
		image,
	)
	e.SetName("player")
	return e, nil
}
