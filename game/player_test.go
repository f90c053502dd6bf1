package game_test

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"testing"
	"testing/fstest"

	"github.com/plus3/platform/assets"
	"github.com/plus3/platform/components"
	"github.com/plus3/platform/ecs"
	"github.com/plus3/platform/game"
	"github.com/plus3/platform/input"
	"github.com/plus3/platform/render"
	"github.com/plus3/platform/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	keyRight input.Key = iota + 1
	keyLeft
	keyDown
	keyUp
)

func testMapper(t *testing.T) *input.Mapper {
	t.Helper()
	m, err := input.Compile(input.Config{
		ActionMappings: map[string][]string{"right": {"RIGHT"}},
		AxisMappings: map[string]input.AxisConfig{
			"horizontal": {Acceleration: 100, Deceleration: 100, Positive: []string{"RIGHT"}, Negative: []string{"LEFT"}},
			"vertical":   {Acceleration: 100, Deceleration: 100, Positive: []string{"DOWN"}, Negative: []string{"UP"}},
		},
	}, input.KeyNames{"RIGHT": keyRight, "LEFT": keyLeft, "DOWN": keyDown, "UP": keyUp})
	require.NoError(t, err)
	return input.NewMapper(m, nil)
}

func spritePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

func testAssets(t *testing.T) *assets.Database {
	t.Helper()
	db := assets.NewDatabase(nil)
	db.SetFS(fstest.MapFS{
		"images/entities/player/idle/00.png": {Data: spritePNG(t)},
	})
	return db
}

func TestNewPlayer(t *testing.T) {
	e, err := game.NewPlayer(testAssets(t), testMapper(t), vmath.V(100, 50))
	require.NoError(t, err)
	assert.Equal(t, "player", e.Name())

	tr, ok := ecs.GetComponent[*components.Transform](e)
	require.True(t, ok)
	assert.Equal(t, vmath.V(100, 50), tr.Position())

	img, ok := ecs.GetComponent[*components.Image](e)
	require.True(t, ok)
	assert.Equal(t, vmath.V(2, 2), img.Scale())
	assert.Equal(t, render.TextureID(1), img.TextureID())

	var order []int
	for c := range e.Components() {
		order = append(order, c.Priority())
	}
	assert.IsNonDecreasing(t, order)
}

func TestNewPlayerMissingTexture(t *testing.T) {
	db := assets.NewDatabase(nil)
	db.SetFS(fstest.MapFS{})
	_, err := game.NewPlayer(db, testMapper(t), vmath.Zero())
	assert.ErrorIs(t, err, assets.ErrNotFound)
}

func TestPlayerMoves(t *testing.T) {
	mapper := testMapper(t)
	e, err := game.NewPlayer(testAssets(t), mapper, vmath.Zero())
	require.NoError(t, err)

	s := ecs.NewSpawner(nil)
	s.Spawn(e)
	s.ResolveRequests()

	mapper.Tick(0.1, input.PressedKeys{keyRight: true})
	s.Tick(0.5)

	tr, _ := ecs.GetComponent[*components.Transform](e)
	assert.InDelta(t, game.DefaultPlayerSpeed*0.5, tr.Position().X, 1e-3)
	assert.InDelta(t, 0, tr.Position().Y, 1e-3)

	ctrl, _ := ecs.GetComponent[*game.PlayerController](e)
	s.Destroy(e.ID())
	s.ResolveRequests()
	assert.Equal(t, vmath.Zero(), ctrl.Move())

	in, _ := ecs.GetComponent[*components.Input](e)
	assert.Equal(t, 0, in.Len(), "bindings are released on exit")
}

func TestPlayerDiagonalSpeed(t *testing.T) {
	mapper := testMapper(t)
	e, err := game.NewPlayer(testAssets(t), mapper, vmath.Zero())
	require.NoError(t, err)

	s := ecs.NewSpawner(nil)
	s.Spawn(e)
	s.ResolveRequests()

	mapper.Tick(0.1, input.PressedKeys{keyRight: true, keyUp: true})
	ctrl, _ := ecs.GetComponent[*game.PlayerController](e)
	assert.Equal(t, vmath.V(1, -1), ctrl.Move(), "raw axis input is kept")

	s.Tick(1)

	tr, _ := ecs.GetComponent[*components.Transform](e)
	assert.InDelta(t, game.DefaultPlayerSpeed, tr.Position().Len(), 1e-2)
	assert.InDelta(t, game.DefaultPlayerSpeed/math.Sqrt2, tr.Position().X, 1e-2)
	assert.InDelta(t, -game.DefaultPlayerSpeed/math.Sqrt2, tr.Position().Y, 1e-2)
}

func TestPlayerControllerWithoutInput(t *testing.T) {
	e := ecs.NewEntity(components.NewTransform(), game.NewPlayerController())
	e.EnterPlay()
	e.Tick(1)

	tr, _ := ecs.GetComponent[*components.Transform](e)
	assert.Equal(t, vmath.Zero(), tr.Position())
}
