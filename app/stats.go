package app

import "time"

// Phase is one stage of a frame. Phases run in declaration order.
type Phase int

const (
	PhaseResolve Phase = iota
	PhaseInput
	PhaseTick
	PhasePhysics
	PhaseRender
	numPhases
)

func (p Phase) String() string {
	switch p {
	case PhaseResolve:
		return "resolve"
	case PhaseInput:
		return "input"
	case PhaseTick:
		return "tick"
	case PhasePhysics:
		return "physics"
	case PhaseRender:
		return "render"
	}
	return "unknown"
}

// Stats provides statistics about frame execution.
type Stats struct {
	Frames uint64
	Phases []PhaseStats
}

// PhaseStats provides execution statistics for a single phase.
type PhaseStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type phaseStatsInternal struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (s *phaseStatsInternal) record(d time.Duration) {
	if s.executionCount == 0 || d < s.minDuration {
		s.minDuration = d
	}
	if d > s.maxDuration {
		s.maxDuration = d
	}
	s.executionCount++
	s.lastDuration = d
	s.totalDuration += d
}

// FrameInfo describes the most recent frame.
type FrameInfo struct {
	Frame        uint64
	Delta        float32 // unscaled seconds
	ScaledDelta  float32
	PhysicsSteps int
	Alpha        float32 // leftover fraction of a fixed step
	Entities     int
	Draws        int
}
