package fps

import (
	"math"
	"time"
)

const (
	MinSampleDuration     = 0
	MaxSampleDuration     = 2 * time.Second
	DefaultSampleDuration = time.Second

	// worst frame tracking stays off until the session is older than this
	WarmUp = 2 * time.Second
)

// infinite stands in for +Inf on durations
const infinite = time.Duration(math.MaxInt64)

type window struct {
	frames  int
	elapsed time.Duration
	best    time.Duration
	worst   time.Duration
}

func (w *window) reset() {
	w.frames = 0
	w.elapsed = 0
	w.best = infinite
	w.worst = 0
}

// Tracker accumulates frame durations into a rolling window plus all-time
// extremes and writes formatted values to its sinks.
// It is not safe for concurrent use, the driving loop owns it.
type Tracker struct {
	sampleDuration time.Duration
	sinks          Sinks

	window
	last  time.Duration
	best  time.Duration
	worst time.Duration

	total     time.Duration
	fps, ms   float64
	flushes   int
	resets    int
	startTick time.Time
	lastTick  time.Time
}

func New(sampleDuration time.Duration, sinks Sinks) *Tracker {
	t := &Tracker{sinks: sinks}
	t.SetSampleDuration(sampleDuration)
	t.clear()
	return t
}

func ClampSampleDuration(d time.Duration) time.Duration {
	return min(max(d, MinSampleDuration), MaxSampleDuration)
}

func (t *Tracker) SetSampleDuration(d time.Duration) {
	t.sampleDuration = ClampSampleDuration(d)
}

func (t *Tracker) SampleDuration() time.Duration {
	return t.sampleDuration
}

// Reset forgets every sample, including the all-time extremes and the
// origin used by Tick. Sinks keep their last text.
func (t *Tracker) Reset() {
	t.resets++
	t.clear()
}

func (t *Tracker) clear() {
	t.window.reset()
	t.last = 0
	t.best = infinite
	t.worst = 0
	t.total = 0
	t.fps, t.ms = 0, 0
	t.flushes = 0
	t.startTick = time.Time{}
	t.lastTick = time.Time{}
}

// Tick drives the tracker from a monotonic clock reading.
// The first call after New or Reset only marks the origin.
func (t *Tracker) Tick(now time.Time) {
	if t.startTick.IsZero() {
		t.startTick = now
		t.lastTick = now
		return
	}
	delta := now.Sub(t.lastTick)
	t.lastTick = now
	t.Frame(delta, now.Sub(t.startTick))
}

// Frame records one rendered frame that took delta, total being the time
// elapsed since the session started. Neither value is affected by any
// time scaling.
func (t *Tracker) Frame(delta, total time.Duration) {
	t.total = total

	t.updateSample(delta)
	t.updateBest(delta)
	t.updateWorst(delta, total)
}

// FrameSeconds is Frame for hosts that report float seconds. Each value is
// rounded to the nearest nanosecond, truncating would make 60 frames of
// 1/60s fall short of a one second window.
func (t *Tracker) FrameSeconds(delta, total float64) {
	t.Frame(Seconds(delta), Seconds(total))
}

func Seconds(secs float64) time.Duration {
	return time.Duration(math.Round(secs * float64(time.Second)))
}

func (t *Tracker) updateSample(delta time.Duration) {
	t.last = delta
	t.frames++
	t.elapsed += delta

	if t.elapsed < t.sampleDuration {
		return
	}

	secs := t.elapsed.Seconds()
	t.fps = float64(t.frames) / secs
	t.ms = 1000 * secs / float64(t.frames)
	t.flushes++
	set(t.sinks.FPS, FormatFPS(t.fps))
	set(t.sinks.Ms, FormatMs(t.ms))

	t.window.reset()
}

func (t *Tracker) updateBest(delta time.Duration) {
	if delta >= t.window.best {
		return
	}
	t.window.best = delta
	if t.window.best < t.best {
		t.best = t.window.best
		set(t.sinks.FPSHigh, FormatFPS(Rate(t.best)))
		set(t.sinks.MsLow, FormatMs(Millis(t.best)))
	}
}

func (t *Tracker) updateWorst(delta, total time.Duration) {
	if total <= WarmUp || delta <= t.window.worst {
		return
	}
	t.window.worst = delta
	if t.window.worst > t.worst {
		t.worst = t.window.worst
		set(t.sinks.FPSLow, FormatFPS(Rate(t.worst)))
		set(t.sinks.MsHigh, FormatMs(Millis(t.worst)))
	}
}

// Rate is the reciprocal of d in frames per second, +Inf for d == 0.
func Rate(d time.Duration) float64 {
	return 1 / d.Seconds()
}

func Millis(d time.Duration) float64 {
	return 1000 * d.Seconds()
}
