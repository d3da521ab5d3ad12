package testfixtures

import (
	"sync"
	"time"
)

// Clock is a deterministic time source for tests. Each call to Now advances
// the clock by the configured step so timestamps stay distinct and ordered.
type Clock struct {
	mu      sync.Mutex
	current time.Time
	step    time.Duration
}

// NewClock creates a clock starting at the given instant with a one second
// step per call.
func NewClock(start time.Time) *Clock {
	return &Clock{current: start, step: time.Second}
}

// Now returns the current instant and advances the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.current
	c.current = c.current.Add(c.step)
	return now
}
