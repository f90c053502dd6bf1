package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/platform/app"
	"github.com/plus3/platform/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomEntity(t *testing.T) {
	for range 50 {
		e := RandomEntity(3)
		assert.GreaterOrEqual(t, e.ComponentCount(), 1)
		assert.LessOrEqual(t, e.ComponentCount(), 3)
	}
}

func TestFrameTimesFinalize(t *testing.T) {
	var f FrameTimes
	for _, d := range []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond} {
		f.Add(d)
	}
	f.Finalize()
	assert.Equal(t, time.Millisecond, f.Min)
	assert.Equal(t, 3*time.Millisecond, f.Max)
	assert.Equal(t, 2*time.Millisecond, f.Avg)
	assert.Equal(t, 2*time.Millisecond, f.P99)
	assert.Equal(t, 3, f.Len())

	t.Run("p99 of a long run", func(t *testing.T) {
		var f FrameTimes
		for i := range 200 {
			f.Add(time.Duration(i+1) * time.Microsecond)
		}
		f.Finalize()
		assert.Equal(t, 198*time.Microsecond, f.P99)
	})

	var empty FrameTimes
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	mappings, err := input.Compile(input.Config{}, input.KeyNames{})
	require.NoError(t, err)
	a := app.New(nil, input.NewMapper(mappings, nil), nil, app.DefaultOptions())
	for range 10 {
		a.Spawn(RandomEntity(4))
	}
	a.Step(frameDelta, input.PressedKeys{})

	report := &Report{
		Duration: time.Second,
		Entities: 10,
		Elapsed:  time.Second,
		Phases:   a.Stats().Phases,
		Spawner:  a.Spawner.CollectStats(),
	}
	report.Frames.Add(time.Millisecond)
	report.Frames.Finalize()
	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "10 live entities")
	assert.Contains(t, out, "| physics | 1 |")
	assert.Contains(t, out, "| *main.load |")
	assert.Contains(t, out, "1 frames in 1s (1.0/s)")
	assert.Contains(t, out, "| heap alloc | 0 | 0 | 0 |")
	assert.NotContains(t, out, "GC pause")
}
