// Package config loads the engine settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Timing  TimingConfig  `toml:"timing"`
	Assets  AssetsConfig  `toml:"assets"`
	Input   InputConfig   `toml:"input"`
	Game    GameConfig    `toml:"game"`
	Logging LoggingConfig `toml:"logging"`
	Debug   DebugConfig   `toml:"debug"`
}

type WindowConfig struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Resizable bool   `toml:"resizable"`
	VSync     bool   `toml:"vsync"`
}

type TimingConfig struct {
	TPS             int           `toml:"tps"`
	FixedStep       time.Duration `toml:"fixed_step"`
	MaxDelta        time.Duration `toml:"max_delta"`
	MaxPhysicsSteps int           `toml:"max_physics_steps"`
	TimeScale       float64       `toml:"time_scale"`
}

type AssetsConfig struct {
	Root string `toml:"root"`
}

type InputConfig struct {
	Mappings    string `toml:"mappings"`     // path to the action/axis table
	TraceEvents bool   `toml:"trace_events"` // log every input edge at debug level
}

type GameConfig struct {
	PlayerSpeed float64  `toml:"player_speed"`
	SpawnX      float64  `toml:"spawn_x"`
	SpawnY      float64  `toml:"spawn_y"`
	Scripts     []string `toml:"scripts"` // asset-relative Lua files, one entity each
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type DebugConfig struct {
	UI      bool   `toml:"ui"`
	Profile string `toml:"profile"` // "", "cpu", "mem" or "trace"
	// WatchConfig re-validates the input mappings file when it changes and
	// reports the result. The running session keeps its table.
	WatchConfig bool `toml:"watch_config"`
}

// Load reads path over the defaults. Relative paths inside the file are
// resolved against the file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse config %s: unknown key %q", path, undecoded[0].String())
	}
	cfg.resolvePaths(filepath.Dir(path))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return defaults()
}

func defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "platform",
			Width:     1280,
			Height:    720,
			Resizable: true,
			VSync:     true,
		},
		Timing: TimingConfig{
			TPS:             60,
			FixedStep:       time.Second / 50,
			MaxDelta:        250 * time.Millisecond,
			MaxPhysicsSteps: 5,
			TimeScale:       1.0,
		},
		Assets: AssetsConfig{
			Root: "assets",
		},
		Input: InputConfig{
			Mappings: "config/input.yaml",
		},
		Game: GameConfig{
			PlayerSpeed: 240,
			SpawnX:      640,
			SpawnY:      360,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c *Config) resolvePaths(base string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	c.Assets.Root = abs(c.Assets.Root)
	c.Input.Mappings = abs(c.Input.Mappings)
}

// Validate rejects settings the frame loop cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Timing.TPS <= 0 {
		errs = append(errs, fmt.Errorf("timing.tps %d must be positive", c.Timing.TPS))
	}
	if c.Timing.FixedStep <= 0 {
		errs = append(errs, fmt.Errorf("timing.fixed_step %s must be positive", c.Timing.FixedStep))
	}
	if c.Timing.MaxDelta < c.Timing.FixedStep {
		errs = append(errs, fmt.Errorf("timing.max_delta %s is shorter than fixed_step %s", c.Timing.MaxDelta, c.Timing.FixedStep))
	}
	if c.Timing.MaxPhysicsSteps <= 0 {
		errs = append(errs, fmt.Errorf("timing.max_physics_steps %d must be positive", c.Timing.MaxPhysicsSteps))
	}
	if c.Timing.TimeScale < 0 {
		errs = append(errs, fmt.Errorf("timing.time_scale %g must not be negative", c.Timing.TimeScale))
	}
	if c.Input.Mappings == "" {
		errs = append(errs, errors.New("input.mappings is required"))
	}
	switch c.Debug.Profile {
	case "", "cpu", "mem", "trace":
	default:
		errs = append(errs, fmt.Errorf("debug.profile %q must be cpu, mem or trace", c.Debug.Profile))
	}
	return errors.Join(errs...)
}
