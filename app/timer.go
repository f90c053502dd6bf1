package app

import "time"

// Timer measures frame deltas. Deltas are clamped to a maximum so a stall
// (debugger, window drag) does not turn into a burst of catch-up steps.
type Timer struct {
	now      func() time.Time
	last     time.Time
	started  bool
	maxDelta float32

	timeScale float32
	delta     float32
	playTime  float64
	frames    uint64
}

func NewTimer(maxDelta time.Duration) *Timer {
	return &Timer{
		now:       time.Now,
		maxDelta:  float32(maxDelta.Seconds()),
		timeScale: 1,
	}
}

// WithClock replaces the time source.
func (t *Timer) WithClock(now func() time.Time) *Timer {
	t.now = now
	return t
}

// FrameStart samples the clock and returns the unscaled, clamped delta in
// seconds. The first frame has a zero delta.
func (t *Timer) FrameStart() float32 {
	now := t.now()
	var dt float32
	if t.started {
		dt = float32(now.Sub(t.last).Seconds())
	}
	t.last = now
	t.started = true
	t.Advance(dt)
	return t.delta
}

// Advance accounts for a frame of length dt without reading the clock.
func (t *Timer) Advance(dt float32) {
	t.delta = min(max(dt, 0), t.maxDelta)
	t.playTime += float64(t.delta)
	t.frames++
}

func (t *Timer) Delta() float32 { return t.delta }

// ScaledDelta is the delta gameplay sees.
func (t *Timer) ScaledDelta() float32 { return t.delta * t.timeScale }

func (t *Timer) TimeScale() float32 { return t.timeScale }

// SetTimeScale changes the speed of gameplay time. Zero pauses it; negative
// values are treated as zero.
func (t *Timer) SetTimeScale(s float32) { t.timeScale = max(s, 0) }

// PlayTime is the sum of unscaled deltas.
func (t *Timer) PlayTime() float64 { return t.playTime }

func (t *Timer) Frames() uint64 { return t.frames }

func (t *Timer) MaxDelta() float32 { return t.maxDelta }
