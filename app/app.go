// Package app drives the frame loop: request resolution, input, gameplay
// tick, fixed-step physics and render submission, in that order.
package app

import (
	"context"
	"time"

	"github.com/plus3/platform/assets"
	"github.com/plus3/platform/ecs"
	"github.com/plus3/platform/input"
	"github.com/plus3/platform/render"
	"go.uber.org/zap"
)

type Options struct {
	FixedStep       time.Duration
	MaxDelta        time.Duration
	MaxPhysicsSteps int
	TimeScale       float32
}

func DefaultOptions() Options {
	return Options{
		FixedStep:       time.Second / 50,
		MaxDelta:        250 * time.Millisecond,
		MaxPhysicsSteps: 5,
		TimeScale:       1,
	}
}

// App owns the runtime services and runs one frame per Step.
type App struct {
	log *zap.Logger

	Spawner *ecs.Spawner
	Input   *input.Mapper
	Assets  *assets.Database
	Queue   *render.Queue
	Timer   *Timer

	fixedStep   float32
	maxSteps    int
	accumulator float32

	stats [numPhases]phaseStatsInternal
	last  FrameInfo
}

func New(log *zap.Logger, mapper *input.Mapper, db *assets.Database, opts Options) *App {
	if log == nil {
		log = zap.NewNop()
	}
	defaults := DefaultOptions()
	if opts.FixedStep <= 0 {
		opts.FixedStep = defaults.FixedStep
	}
	if opts.MaxDelta <= 0 {
		opts.MaxDelta = defaults.MaxDelta
	}
	timer := NewTimer(opts.MaxDelta)
	timer.SetTimeScale(opts.TimeScale)
	return &App{
		log:       log,
		Spawner:   ecs.NewSpawner(log.Named("ecs")),
		Input:     mapper,
		Assets:    db,
		Queue:     render.NewQueue(),
		Timer:     timer,
		fixedStep: float32(opts.FixedStep.Seconds()),
		maxSteps:  max(opts.MaxPhysicsSteps, 1),
	}
}

// Spawn queues e for the next frame.
func (a *App) Spawn(e *ecs.Entity) ecs.EntityID { return a.Spawner.Spawn(e) }

func (a *App) Destroy(id ecs.EntityID) { a.Spawner.Destroy(id) }

// Frame samples the timer and runs one frame against kb.
func (a *App) Frame(kb input.KeyboardState) {
	a.Timer.FrameStart()
	a.step(kb)
}

// Step runs one frame of length dt seconds without reading the clock.
func (a *App) Step(dt float32, kb input.KeyboardState) {
	a.Timer.Advance(dt)
	a.step(kb)
}

func (a *App) step(kb input.KeyboardState) {
	dt := a.Timer.Delta()
	scaled := a.Timer.ScaledDelta()

	a.timed(PhaseResolve, a.Spawner.ResolveRequests)

	// Input integrates unscaled time.
	a.timed(PhaseInput, func() { a.Input.Tick(dt, kb) })

	a.timed(PhaseTick, func() { a.Spawner.Tick(scaled) })

	steps := 0
	a.timed(PhasePhysics, func() { steps = a.physics(scaled) })

	a.timed(PhaseRender, func() {
		a.Queue.Clear()
		a.Spawner.RenderTick(scaled, a.Queue)
	})

	a.last = FrameInfo{
		Frame:        a.Timer.Frames(),
		Delta:        dt,
		ScaledDelta:  scaled,
		PhysicsSteps: steps,
		Alpha:        a.Alpha(),
		Entities:     a.Spawner.Len(),
		Draws:        a.Queue.Len(),
	}
}

// physics runs whole fixed steps out of the accumulated time. Time beyond
// maxSteps steps is dropped.
func (a *App) physics(dt float32) int {
	a.accumulator += dt
	steps := 0
	for a.accumulator >= a.fixedStep && steps < a.maxSteps {
		a.Spawner.PhysicsTick(a.fixedStep)
		a.accumulator -= a.fixedStep
		steps++
	}
	if a.accumulator >= a.fixedStep {
		a.log.Debug("physics steps capped",
			zap.Int("steps", steps),
			zap.Float32("dropped", a.accumulator-a.fixedStep),
		)
		for a.accumulator >= a.fixedStep {
			a.accumulator -= a.fixedStep
		}
	}
	return steps
}

func (a *App) timed(p Phase, fn func()) {
	start := time.Now()
	fn()
	a.stats[p].record(time.Since(start))
}

// Alpha is how far the simulation is into the next fixed step, in [0, 1).
func (a *App) Alpha() float32 {
	if a.fixedStep <= 0 {
		return 0
	}
	return a.accumulator / a.fixedStep
}

func (a *App) FixedStep() float32 { return a.fixedStep }

// LastFrame describes the most recently completed frame.
func (a *App) LastFrame() FrameInfo { return a.last }

// Stats returns per-phase timing.
func (a *App) Stats() Stats {
	stats := Stats{
		Frames: a.Timer.Frames(),
		Phases: make([]PhaseStats, numPhases),
	}
	for p := range numPhases {
		internal := a.stats[p]
		avg := time.Duration(0)
		if internal.executionCount > 0 {
			avg = internal.totalDuration / time.Duration(internal.executionCount)
		}
		stats.Phases[p] = PhaseStats{
			Name:           p.String(),
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avg,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
	}
	return stats
}

// Run steps the app at the given interval until ctx is cancelled, reading
// keyboard state from kb. It is the headless counterpart of the windowed
// backend loop.
func (a *App) Run(ctx context.Context, interval time.Duration, kb input.KeyboardState) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.Frame(kb)
		}
	}
}

// Shutdown takes every entity out of play.
func (a *App) Shutdown() {
	a.Spawner.Shutdown()
	a.log.Info("app shut down", zap.Uint64("frames", a.Timer.Frames()))
}
