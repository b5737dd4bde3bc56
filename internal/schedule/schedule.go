// Package schedule provides the timer primitives the orchestrator uses to
// coalesce rapid successive triggers: a trailing-edge debouncer and a
// leading-edge throttler.
package schedule

import (
	"sync"
	"time"
)

// Debouncer defers fn until the window has elapsed without a new trigger. A
// pending timer is restarted, not stacked, on each trigger inside the
// window.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	timer  *time.Timer
}

// NewDebouncer constructs a debouncer with the given window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Trigger schedules fn after the window, replacing any pending schedule.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, fn)
}

// Cancel drops any pending schedule.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Throttler runs fn at most once per window, on the leading edge. Triggers
// inside the window are dropped.
type Throttler struct {
	mu     sync.Mutex
	window time.Duration
	last   time.Time
	now    func() time.Time
}

// NewThrottler constructs a throttler with the given window.
func NewThrottler(window time.Duration) *Throttler {
	return &Throttler{window: window, now: time.Now}
}

// Trigger runs fn when the window has elapsed since the last accepted
// trigger and reports whether it ran.
func (t *Throttler) Trigger(fn func()) bool {
	t.mu.Lock()
	current := t.now()
	if !t.last.IsZero() && current.Sub(t.last) < t.window {
		t.mu.Unlock()
		return false
	}
	t.last = current
	t.mu.Unlock()

	fn()
	return true
}
