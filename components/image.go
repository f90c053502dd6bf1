package components

import (
	"github.com/plus3/platform/ecs"
	"github.com/plus3/platform/render"
	"github.com/plus3/platform/vmath"
	"go.uber.org/zap"
)

// Image submits one textured quad per frame at its entity's Transform.
type Image struct {
	textureID render.TextureID
	scale     vmath.Vec2
	hidden    bool

	warnedNoTransform bool
}

func NewImage(id render.TextureID) *Image {
	return &Image{textureID: id, scale: vmath.One()}
}

func (c *Image) Priority() int { return ecs.PriorityRender }

func (c *Image) TextureID() render.TextureID      { return c.textureID }
func (c *Image) SetTextureID(id render.TextureID) { c.textureID = id }
func (c *Image) Scale() vmath.Vec2                { return c.scale }
func (c *Image) SetScale(s vmath.Vec2)            { c.scale = s }
func (c *Image) Hidden() bool                     { return c.hidden }
func (c *Image) SetHidden(h bool)                 { c.hidden = h }

// RenderTick enqueues the texture with the image scale multiplied by the
// transform scale. Without a sibling Transform nothing is drawn.
func (c *Image) RenderTick(e *ecs.Entity, dt float32, q *render.Queue) {
	if c.hidden {
		return
	}
	t, ok := ecs.GetComponent[*Transform](e)
	if !ok {
		if !c.warnedNoTransform {
			e.Logger().Warn("image has no transform, skipping draw",
				zap.Uint32("texture", uint32(c.textureID)))
			c.warnedNoTransform = true
		}
		return
	}
	q.Enqueue(render.Data{
		TextureID:    c.textureID,
		Position:     t.Position(),
		PrevPosition: t.PrevPosition(),
		Scale:        c.scale.Mul(t.Scale()),
	})
}
