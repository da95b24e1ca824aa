package clock

import (
	"fmt"
	"time"
)

// TimeSource supplies monotonic time readings.
type TimeSource interface {
	Now() time.Time
}

type systemTime struct{}

func (systemTime) Now() time.Time { return time.Now() }

// System reads the process clock. time.Now carries a monotonic reading, so
// wall clock adjustments do not leak into deltas.
var System TimeSource = systemTime{}

// WallClock converts elapsed time into per-tick delta seconds.
type WallClock struct {
	source TimeSource

	start   time.Time
	current time.Time
	last    time.Time
	delta   float64
	ticks   uint64
}

func NewWallClock(source TimeSource) *WallClock {
	if source == nil {
		source = System
	}
	now := source.Now()
	return &WallClock{
		source:  source,
		start:   now,
		current: now,
		last:    now,
	}
}

// Now returns seconds since construction.
func (c *WallClock) Now() float64 {
	return c.Elapsed().Seconds()
}

// Elapsed returns the time since construction.
func (c *WallClock) Elapsed() time.Duration {
	if c == nil {
		return 0
	}
	return c.source.Now().Sub(c.start)
}

// Tick returns the seconds elapsed since the previous Tick, or since
// construction for the first call. It must be called once per host tick.
func (c *WallClock) Tick() float64 {
	if c == nil {
		return 0
	}
	c.last = c.current
	c.current = c.source.Now()
	c.delta = c.current.Sub(c.last).Seconds()
	c.ticks++
	return c.delta
}

// Ticks returns how many times Tick has run.
func (c *WallClock) Ticks() uint64 {
	if c == nil {
		return 0
	}
	return c.ticks
}

// Delta returns the value computed by the most recent Tick.
func (c *WallClock) Delta() float64 {
	if c == nil {
		return 0
	}
	return c.delta
}

// ElapsedFormatted renders the time since construction as DD:HH:MM:SS.mmm.
func (c *WallClock) ElapsedFormatted() string {
	return FormatElapsed(c.Elapsed())
}

// FormatElapsed renders d as DD:HH:MM:SS.mmm with every field zero padded.
// Negative durations render as zero.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()

	days := ms / msPerDay
	ms -= days * msPerDay
	hours := ms / msPerHour
	ms -= hours * msPerHour
	minutes := ms / msPerMinute
	ms -= minutes * msPerMinute
	seconds := ms / msPerSecond
	ms -= seconds * msPerSecond

	return fmt.Sprintf("%02d:%02d:%02d:%02d.%03d", days, hours, minutes, seconds, ms)
}

const (
	msPerSecond = int64(time.Second / time.Millisecond)
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)
