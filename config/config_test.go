package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "engine.toml", `
[window]
title = "test"
width = 640
height = 480

[timing]
fixed_step = "10ms"
time_scale = 0.5

[input]
mappings = "input.yaml"
trace_events = true

[game]
scripts = ["scripts/spin.lua"]

[debug]
profile = "cpu"
watch_config = true
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Window.Title)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 10*time.Millisecond, cfg.Timing.FixedStep)
	assert.Equal(t, 0.5, cfg.Timing.TimeScale)
	assert.Equal(t, 250*time.Millisecond, cfg.Timing.MaxDelta, "defaults survive")
	assert.Equal(t, 60, cfg.Timing.TPS)
	assert.Equal(t, filepath.Join(dir, "input.yaml"), cfg.Input.Mappings)
	assert.Equal(t, filepath.Join(dir, "assets"), cfg.Assets.Root)
	assert.True(t, cfg.Input.TraceEvents)
	assert.True(t, cfg.Debug.WatchConfig)
	assert.Equal(t, []string{"scripts/spin.lua"}, cfg.Game.Scripts)
	assert.Equal(t, "cpu", cfg.Debug.Profile)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(dir, "nope.toml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := config.Load(writeFile(t, dir, "bad.toml", "[window\n"))
		assert.Error(t, err)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := config.Load(writeFile(t, dir, "typo.toml", "[window]\nwidht = 3\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "window.widht")
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := config.Load(writeFile(t, dir, "invalid.toml", `
[window]
width = 0
[timing]
max_physics_steps = 0
[debug]
profile = "heap"
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "window size")
		assert.Contains(t, err.Error(), "max_physics_steps")
		assert.Contains(t, err.Error(), "debug.profile")
	})
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, config.Default().Validate())
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		t.Run(format, func(t *testing.T) {
			log, err := config.NewLogger(config.LoggingConfig{Level: "debug", Format: format})
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(-1), "debug enabled")
		})
	}

	t.Run("bad level falls back to info", func(t *testing.T) {
		log, err := config.NewLogger(config.LoggingConfig{Level: "loud"})
		require.NoError(t, err)
		assert.False(t, log.Core().Enabled(-1))
		assert.True(t, log.Core().Enabled(0))
	})
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	watched := writeFile(t, dir, "input.yaml", "action_mappings: {}\n")
	writeFile(t, dir, "other.yaml", "")

	w, err := config.NewWatcher(watched)
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, dir, "other.yaml", "ignored: true\n")
	writeFile(t, dir, "input.yaml", "action_mappings: {jump: [SPACE]}\n")

	select {
	case name := <-w.Events:
		abs, _ := filepath.Abs(watched)
		assert.Equal(t, abs, name)
	case <-time.After(5 * time.Second):
		t.Fatal("no change event")
	}

	require.NoError(t, w.Close())
	_, ok := w.Poll()
	assert.False(t, ok)
}
