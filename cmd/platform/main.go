// Command platform opens a window and runs the game: a player steered by the
// configured input mappings plus any Lua-scripted entities.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/profile"
	"github.com/plus3/platform/app"
	"github.com/plus3/platform/assets"
	"github.com/plus3/platform/backend"
	"github.com/plus3/platform/config"
	"github.com/plus3/platform/ecs"
	"github.com/plus3/platform/ecs/debugui"
	debugui_ebiten "github.com/plus3/platform/ecs/debugui/ebiten"
	"github.com/plus3/platform/game"
	"github.com/plus3/platform/input"
	"github.com/plus3/platform/vmath"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	defaultConfig := "config/engine.toml"
	if p := os.Getenv("PLATFORM_CONFIG"); p != "" {
		defaultConfig = p
	}
	cfgPath := flag.String("config", defaultConfig, "engine config file")
	profileMode := flag.String("profile", "", "profile the run: cpu, mem or trace")
	debugUI := flag.Bool("debug", false, "show the debug overlay")
	flag.Parse()

	// 1. Config and logger
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *profileMode != "" {
		cfg.Debug.Profile = *profileMode
	}
	if *debugUI {
		cfg.Debug.UI = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if stop := startProfile(cfg.Debug.Profile); stop != nil {
		defer stop()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 2. Input
	keys := backend.KeyNames()
	mappings, err := loadMappings(cfg.Input.Mappings, keys)
	if err != nil {
		return err
	}
	mapper := input.NewMapper(mappings, log.Named("input"))
	if cfg.Input.TraceEvents {
		inputLog := log.Named("input")
		mapper.AddHandler(func(ev input.Event) {
			if ev.Type != input.Axis {
				inputLog.Debug("input event", zap.Stringer("type", ev.Type), zap.String("name", ev.Name))
			}
		})
	}

	// 3. Assets and runtime
	db := assets.NewDatabase(log.Named("assets"))
	db.SetRoot(cfg.Assets.Root)

	a := app.New(log, mapper, db, app.Options{
		FixedStep:       cfg.Timing.FixedStep,
		MaxDelta:        cfg.Timing.MaxDelta,
		MaxPhysicsSteps: cfg.Timing.MaxPhysicsSteps,
		TimeScale:       float32(cfg.Timing.TimeScale),
	})
	defer a.Shutdown()

	// 4. Content
	spawn := vmath.V(float32(cfg.Game.SpawnX), float32(cfg.Game.SpawnY))
	player, err := game.NewPlayer(db, mapper, spawn)
	if err != nil {
		return err
	}
	if pc, ok := ecs.GetComponent[*game.PlayerController](player); ok {
		pc.Speed = float32(cfg.Game.PlayerSpeed)
	}
	a.Spawn(player)

	for _, script := range cfg.Game.Scripts {
		e, err := game.NewScripted(db, mapper, script, spawn)
		if err != nil {
			return err
		}
		a.Spawn(e)
	}
	log.Info("content loaded",
		zap.Int("entities", a.Spawner.PendingSpawns()),
		zap.Int("textures", db.TextureCount()),
	)

	// 5. Window
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetVsyncEnabled(cfg.Window.VSync)
	ebiten.SetTPS(cfg.Timing.TPS)

	kb := backend.Keyboard{}
	var overlay backend.Overlay
	if cfg.Debug.UI {
		overlay = debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
		kb.Captured = debugui.WantCaptureKeyboard
		debugui.SpawnDebugUI(a)
	}

	g := backend.NewGame(ctx, a, kb, cfg.Window.Width, cfg.Window.Height, log)
	g.ShowFPS = cfg.Debug.UI
	g.Overlay = overlay

	if cfg.Debug.WatchConfig {
		watcher, err := config.NewWatcher(cfg.Input.Mappings)
		if err != nil {
			return fmt.Errorf("watch input config: %w", err)
		}
		defer watcher.Close()
		g.Changes = watcher
		g.Reload = func(p string) { lintMappings(log, p, keys) }
	}

	log.Info("starting", zap.String("title", cfg.Window.Title), zap.Int("tps", cfg.Timing.TPS))
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

func loadMappings(p string, keys input.KeyResolver) (*input.Mappings, error) {
	icfg, err := input.LoadConfig(p)
	if err != nil {
		return nil, err
	}
	mappings, err := input.Compile(icfg, keys)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", p, err)
	}
	return mappings, nil
}

// lintMappings re-validates an edited mappings file. The running session keeps
// the table it started with.
func lintMappings(log *zap.Logger, p string, keys input.KeyResolver) {
	mappings, err := loadMappings(p, keys)
	if err != nil {
		log.Warn("input config edit is invalid", zap.String("path", p), zap.Error(err))
		return
	}
	log.Info("input config edit is valid; restart to apply",
		zap.String("path", p),
		zap.Int("actions", len(mappings.Actions)),
		zap.Int("axes", len(mappings.Axes)),
	)
}

func startProfile(mode string) func() {
	var opt func(*profile.Profile)
	switch mode {
	case "cpu":
		opt = profile.CPUProfile
	case "mem":
		opt = profile.MemProfile
	case "trace":
		opt = profile.TraceProfile
	default:
		return nil
	}
	return profile.Start(opt, profile.ProfilePath("."), profile.NoShutdownHook).Stop
}
