package game

import (
	"fmt"
	"path"

	"github.com/plus3/platform/assets"
	"github.com/plus3/platform/components"
	"github.com/plus3/platform/ecs"
	"github.com/plus3/platform/input"
	"github.com/plus3/platform/vmath"
)

// NewScripted builds an entity driven by the Lua file at the asset-relative
// path script. It is drawn with the player sprite at its natural size.
func NewScripted(db *assets.Database, mapper *input.Mapper, script string, at vmath.Vec2) (*ecs.Entity, error) {
	p, err := db.Path(script)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", script, err)
	}
	src, err := db.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", script, err)
	}

	texPath, err := db.Path(playerTexture...)
	if err != nil {
		return nil, fmt.Errorf("script %s sprite: %w", script, err)
	}
	tex, err := db.LoadTexture(texPath)
	if err != nil {
		return nil, fmt.Errorf("script %s sprite: %w", script, err)
	}

	name := path.Base(script)
	transform := components.NewTransform()
	transform.Teleport(at)

	e := ecs.NewEntity(
		transform,
		components.NewScript(name, src).UseInput(mapper),
		components.NewImage(tex),
	)
	e.SetName(name)
	return e, nil
}
