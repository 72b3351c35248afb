package engine

import (
	"time"
)

// DefaultMaxDelta caps a single tick's elapsed time so stalls do not teleport entities
const DefaultMaxDelta = 33 * time.Millisecond

// DeltaClock derives the clamped per-tick delta time from successive timestamps.
// It is updated by the loop driver at the start of each tick and read by systems.
//
// Delta is 0 on the first tick, never negative, at most MaxDelta, and 0 while paused.
type DeltaClock struct {
	MaxDelta time.Duration

	last    time.Time
	started bool
	paused  bool

	delta       time.Duration
	elapsed     time.Duration // Sum of deltas, i.e. game time
	frameNumber int64
}

// NewDeltaClock creates a clock clamping deltas to maxDelta; non-positive uses DefaultMaxDelta
func NewDeltaClock(maxDelta time.Duration) *DeltaClock {
	if maxDelta <= 0 {
		maxDelta = DefaultMaxDelta
	}
	return &DeltaClock{MaxDelta: maxDelta}
}

// Tick advances the clock to now
func (c *DeltaClock) Tick(now time.Time) {
	c.frameNumber++

	if !c.started {
		c.started = true
		c.last = now
		c.delta = 0
		return
	}

	d := now.Sub(c.last)
	// Non-decreasing source: a backwards step is ignored rather than rewinding
	if d < 0 {
		d = 0
	} else {
		c.last = now
	}
	if d > c.MaxDelta {
		d = c.MaxDelta
	}
	if c.paused {
		d = 0
	}

	c.delta = d
	c.elapsed += d
}

// Delta returns the clamped duration of the current tick
func (c *DeltaClock) Delta() time.Duration {
	return c.delta
}

// DeltaSeconds returns Delta in seconds for velocity integration
func (c *DeltaClock) DeltaSeconds() float64 {
	return c.delta.Seconds()
}

// Elapsed returns accumulated game time, excluding pauses and clamped stalls
func (c *DeltaClock) Elapsed() time.Duration {
	return c.elapsed
}

// FrameNumber returns the number of ticks seen
func (c *DeltaClock) FrameNumber() int64 {
	return c.frameNumber
}

// Pause freezes game time; Tick keeps counting frames with zero delta
func (c *DeltaClock) Pause() {
	c.paused = true
}

// Resume continues game time advancement
func (c *DeltaClock) Resume() {
	c.paused = false
}

// IsPaused returns current pause state
func (c *DeltaClock) IsPaused() bool {
	return c.paused
}
