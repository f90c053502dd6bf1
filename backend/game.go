package backend

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/plus3/platform/app"
	"github.com/plus3/platform/input"
	"go.uber.org/zap"
)

// Overlay is drawn on top of the game, typically the debug UI.
type Overlay interface {
	BeginFrame()
	EndFrame()
	Draw(screen *ebiten.Image)
	Layout(w, h int)
}

// Game adapts an app.App to ebiten.Game.
type Game struct {
	ctx      context.Context
	log      *zap.Logger
	app      *app.App
	renderer *Renderer
	keyboard input.KeyboardState

	width, height int

	// Overlay is optional.
	Overlay Overlay
	// Reload, when set, is called from Update with each changed file reported
	// by Changes.
	Reload  func(path string)
	Changes interface{ Poll() (string, bool) }
	// ShowFPS prints frame counters in the top-left corner.
	ShowFPS bool
}

// NewGame returns a game with a fixed logical screen of width by height
// pixels. Update returns ebiten.Termination once ctx is done.
func NewGame(ctx context.Context, a *app.App, kb input.KeyboardState, width, height int, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	return &Game{
		ctx:      ctx,
		log:      log,
		app:      a,
		renderer: NewRenderer(a.Assets, log.Named("render")),
		keyboard: kb,
		width:    width,
		height:   height,
	}
}

func (g *Game) Update() error {
	if err := g.ctx.Err(); err != nil {
		g.log.Info("stopping", zap.Error(context.Cause(g.ctx)))
		return ebiten.Termination
	}

	if g.Changes != nil && g.Reload != nil {
		for {
			path, ok := g.Changes.Poll()
			if !ok {
				break
			}
			g.Reload(path)
		}
	}

	if g.Overlay != nil {
		g.Overlay.BeginFrame()
		defer g.Overlay.EndFrame()
	}

	g.app.Frame(g.keyboard)
	g.renderer.Submit(g.app.Queue)
	return nil
}

// Draw may run several times per Update; each run draws the frame submitted
// by the last Update.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.app.Alpha())

	if g.ShowFPS {
		info := g.app.LastFrame()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %.1f  FPS: %.1f  entities: %d  draws: %d",
			ebiten.ActualTPS(), ebiten.ActualFPS(), info.Entities, g.renderer.Drawn()))
	}

	if g.Overlay != nil {
		g.Overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.Overlay != nil {
		g.Overlay.Layout(outsideWidth, outsideHeight)
	}
	return g.width, g.height
}

func (g *Game) Renderer() *Renderer { return g.renderer }
