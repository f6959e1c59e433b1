package player

import (
	"sync"
	"time"
)

// Clock schedules deferred calls. RealClock is used in production; tests
// drive a ManualClock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	// Stop cancels the call. It reports whether the call was still pending.
	Stop() bool
}

type RealClock struct{}

func (RealClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// ManualClock is a Clock whose time only moves when Advance is called.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

func NewManualClock() *ManualClock { return &ManualClock{} }

type manualTimer struct {
	c  *ManualClock
	at time.Duration
	f  func()
}

func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{c: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	return t.c.removeLocked(t)
}

func (c *ManualClock) removeLocked(t *manualTimer) bool {
	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves time forward by d, firing due timers in deadline order.
// Timers scheduled by fired callbacks also fire if they fall within d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	for {
		var next *manualTimer
		for _, t := range c.timers {
			if t.at <= target && (next == nil || t.at < next.at) {
				next = t
			}
		}
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.removeLocked(next)
		c.now = next.at
		c.mu.Unlock()
		next.f()
		c.mu.Lock()
	}
}

func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending returns the number of scheduled, unfired timers.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}
