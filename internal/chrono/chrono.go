// Package chrono provides monotonic timing helpers for frame and timer code.
//
// The start epoch is captured explicitly by Start, normally once at process
// entry, so tests and callers never depend on which call happened first.
package chrono

import (
	"sync"
	"time"
)

// Clock measures time against two epochs: the moment it was created (the
// clock epoch) and the moment Start was first called.
type Clock struct {
	now   func() time.Time
	epoch time.Time

	mu      sync.Mutex
	start   time.Time
	started bool
}

// New returns a clock reading time from now. A nil now uses time.Now.
func New(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, epoch: now()}
}

// Now returns a timepoint suitable for measuring differences.
func (c *Clock) Now() time.Time {
	return c.now()
}

// Start records the start epoch. Only the first call has an effect; it
// reports whether this call set the epoch.
func (c *Clock) Start() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return false
	}
	c.start = c.now()
	c.started = true
	return true
}

// SinceEpoch returns the milliseconds elapsed since the clock was created.
// It never decreases.
func (c *Clock) SinceEpoch() uint64 {
	return millis(c.now().Sub(c.epoch))
}

// SinceStart returns the milliseconds elapsed since Start, or zero if Start
// has not been called.
func (c *Clock) SinceStart() uint64 {
	c.mu.Lock()
	start, started := c.start, c.started
	c.mu.Unlock()
	if !started {
		return 0
	}
	return millis(c.now().Sub(start))
}

// Micros returns end - start in microseconds.
func Micros(start, end time.Time) float64 {
	return float64(end.Sub(start).Microseconds())
}

func millis(d time.Duration) uint64 {
	if d < 0 {
		return 0
	}
	return uint64(d.Milliseconds())
}

var defaultClock = New(nil)

// Now returns a monotonic timepoint from the default clock.
func Now() time.Time { return defaultClock.Now() }

// Start records the process start epoch on the default clock.
func Start() bool { return defaultClock.Start() }

// SinceEpoch returns the milliseconds since the default clock was created.
func SinceEpoch() uint64 { return defaultClock.SinceEpoch() }

// SinceStart returns the milliseconds since Start on the default clock.
func SinceStart() uint64 { return defaultClock.SinceStart() }
