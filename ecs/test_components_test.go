package ecs_test

import (
	"fmt"

	"github.com/plus3/platform/ecs"
	"github.com/plus3/platform/render"
)

// recorder collects hook calls across every component of a test.
type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

// tracer records every hook it receives.
type tracer struct {
	name     string
	priority int
	rec      *recorder
}

func (p *tracer) Priority() int { return p.priority }

func (p *tracer) EnterPlay(e *ecs.Entity) { p.rec.add("enter %s", p.name) }
func (p *tracer) ExitPlay(e *ecs.Entity)  { p.rec.add("exit %s", p.name) }

func (p *tracer) Tick(e *ecs.Entity, dt float32) { p.rec.add("tick %s", p.name) }

func (p *tracer) PhysicsTick(e *ecs.Entity, fixedDt float32) {
	p.rec.add("physics %s", p.name)
}

func (p *tracer) RenderTick(e *ecs.Entity, dt float32, q *render.Queue) {
	p.rec.add("render %s", p.name)
	q.Enqueue(render.Data{TextureID: render.TextureID(e.ID())})
}

// marker implements no hooks at all.
type marker struct{}

func (marker) Priority() int { return ecs.PriorityDefault }

// hookFunc runs arbitrary code from EnterPlay and ExitPlay.
type hookFunc struct {
	onEnter func(e *ecs.Entity)
	onExit  func(e *ecs.Entity)
}

func (h *hookFunc) Priority() int { return ecs.PriorityDefault }

func (h *hookFunc) EnterPlay(e *ecs.Entity) {
	if h.onEnter != nil {
		h.onEnter(e)
	}
}

func (h *hookFunc) ExitPlay(e *ecs.Entity) {
	if h.onExit != nil {
		h.onExit(e)
	}
}

// tickFunc runs arbitrary code from Tick.
type tickFunc func(e *ecs.Entity)

func (tickFunc) Priority() int { return ecs.PriorityDefault }

func (f tickFunc) Tick(e *ecs.Entity, dt float32) { f(e) }
