package timelocktest

import (
	"context"
	"sync"
	"time"

	"github.com/iov-one/timelock"
)

// Context returns a context with given time set as the block time.
func Context(now time.Time) context.Context {
	return timelock.WithBlockTime(context.Background(), now)
}

// Clock is a manually controlled source of time, safe for concurrent use.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a clock stopped at given moment.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the current time of the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Set moves the clock to given moment.
func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}
