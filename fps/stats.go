package fps

import (
	"time"
)

// Stats is a copy of the tracker state, safe to hand to other goroutines.
type Stats struct {
	// Values emitted at the last window flush, zero before the first one.
	FPS     float64
	FrameMs float64
	Flushes int
	// Bumped by every Tracker.Reset, Flushes restarts from 0 with it.
	Generation int

	// Frames and time accumulated in the current window.
	WindowFrames  int
	WindowElapsed time.Duration

	LastFrame time.Duration
	Total     time.Duration
	WarmingUp bool

	// Best is only meaningful with HasBest, a zero length frame is a
	// valid best. Worst stays zero until observed.
	Best, Worst time.Duration
	HasBest     bool
}

func (s Stats) BestFPS() float64 {
	if !s.HasBest {
		return 0
	}
	return Rate(s.Best)
}

func (s Stats) WorstFPS() float64 {
	if s.Worst == 0 {
		return 0
	}
	return Rate(s.Worst)
}

func (t *Tracker) Stats() Stats {
	s := Stats{
		FPS:           t.fps,
		FrameMs:       t.ms,
		Flushes:       t.flushes,
		Generation:    t.resets,
		WindowFrames:  t.frames,
		WindowElapsed: t.elapsed,
		LastFrame:     t.last,
		Total:         t.total,
		WarmingUp:     t.total <= WarmUp,
		Worst:         t.worst,
	}
	if t.best != infinite {
		s.Best = t.best
		s.HasBest = true
	}
	return s
}
