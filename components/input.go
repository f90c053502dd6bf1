package components

import (
	"github.com/plus3/platform/ecs"
	"github.com/plus3/platform/input"
)

// Input subscribes its bindings to a shared Mapper while the entity is in
// play. Bindings may be added before or after the entity enters play.
type Input struct {
	*input.Bindings

	mapper    *input.Mapper
	handlerID input.HandlerID
}

func NewInput(mapper *input.Mapper) *Input {
	return &Input{
		Bindings: input.NewBindings(),
		mapper:   mapper,
	}
}

func (c *Input) Priority() int { return ecs.PriorityInput }

func (c *Input) Mapper() *input.Mapper { return c.mapper }

// Subscribed reports whether the bindings currently receive events.
func (c *Input) Subscribed() bool { return c.handlerID != input.InvalidHandlerID }

func (c *Input) EnterPlay(e *ecs.Entity) {
	c.handlerID = c.mapper.AddHandler(c.Dispatch)
}

func (c *Input) ExitPlay(e *ecs.Entity) {
	c.mapper.RemoveHandler(c.handlerID)
	c.handlerID = input.InvalidHandlerID
}
