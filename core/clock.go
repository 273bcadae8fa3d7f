package core

import (
	"sync"
	"time"
)

// Clock abstracts wall time and timer scheduling so every timing-dependent
// component (recorder timestamps, playback delivery) stays deterministic
// under test. SystemClock is the production implementation; ManualClock is a
// hand-advanced clock for tests and replay verification, colocated here in
// the style of mock-in-package clock libraries.
type Clock interface {
	// Now returns the current instant. Implementations must be monotonic:
	// successive calls never go backwards.
	Now() time.Time

	// AfterFunc schedules fn to run once after d elapses and returns a
	// cancellable handle. fn runs on an unspecified goroutine.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a single cancellable scheduled task.
type Timer interface {
	// Stop cancels the pending task, reporting whether the call prevented it
	// from firing.
	Stop() bool
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return systemTimer{t: time.AfterFunc(d, fn)}
}

type systemTimer struct{ t *time.Timer }

func (t systemTimer) Stop() bool { return t.t.Stop() }

// SystemClock returns the Clock backed by the runtime clock.
func SystemClock() Clock { return systemClock{} }

// ManualClock is a Clock whose time moves only when Advance is called. Timers
// fire synchronously on the advancing goroutine in deadline order (insertion
// order on ties), with Now reporting each timer's deadline while its callback
// runs. Safe for concurrent use.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
	seq    int
}

// NewManualClock creates a manual clock positioned at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the clock's current position.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc registers fn to fire once the clock advances past d from now.
// Non-positive d fires on the next Advance call, including Advance(0).
func (c *ManualClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &manualTimer{clock: c, deadline: c.now.Add(d), seq: c.seq, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Pending reports how many scheduled tasks have neither fired nor been
// stopped.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing every due timer in deadline
// order before settling on the target instant. Callbacks run without the
// clock lock held, so they may schedule or stop timers themselves.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	for {
		t := c.nextDueLocked(target)
		if t == nil {
			break
		}
		t.fired = true
		if t.deadline.After(c.now) {
			c.now = t.deadline
		}
		fn := t.fn
		c.mu.Unlock()
		fn()
		c.mu.Lock()
	}
	if target.After(c.now) {
		c.now = target
	}
	c.compactLocked()
	c.mu.Unlock()
}

// nextDueLocked returns the earliest live timer due at or before target.
func (c *ManualClock) nextDueLocked(target time.Time) *manualTimer {
	var best *manualTimer
	for _, t := range c.timers {
		if t.fired || t.stopped || t.deadline.After(target) {
			continue
		}
		if best == nil || t.deadline.Before(best.deadline) ||
			(t.deadline.Equal(best.deadline) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

// compactLocked drops finished timers so long-lived clocks do not accumulate.
func (c *ManualClock) compactLocked() {
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			live = append(live, t)
		}
	}
	c.timers = live
}

type manualTimer struct {
	clock    *ManualClock
	deadline time.Time
	seq      int
	fn       func()
	fired    bool
	stopped  bool
}

// Stop cancels the timer if it has not fired yet.
func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
