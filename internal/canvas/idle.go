package canvas

import (
	"sync"
	"time"
)

// Timer is a scheduled callback that can be stopped.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. The board's idle detection uses it so
// tests can drive time by hand.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ClockScheduler schedules callbacks on real timers.
var ClockScheduler Scheduler = clockScheduler{}

// IdleTimer calls a function once activity has stopped for a fixed delay.
//
// Every Reset cancels the pending callback and schedules a new one. Each
// scheduling carries a generation number; a callback that fires after it
// was superseded or cancelled sees a stale generation and does nothing, so
// a timer that races its own Stop never acts on old state.
type IdleTimer struct {
	mu     sync.Mutex
	sched  Scheduler
	delay  time.Duration
	fn     func()
	gen    uint64
	timer  Timer
	closed bool
}

// NewIdleTimer creates a timer that calls fn after delay of inactivity. A
// delay <= 0 disables it.
func NewIdleTimer(delay time.Duration, fn func(), sched Scheduler) *IdleTimer {
	if sched == nil {
		sched = ClockScheduler
	}
	return &IdleTimer{sched: sched, delay: delay, fn: fn}
}

// Reset restarts the quiescence window.
func (t *IdleTimer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || t.delay <= 0 {
		return
	}
	t.stopLocked()
	gen := t.gen
	t.timer = t.sched.AfterFunc(t.delay, func() { t.fire(gen) })
}

// Cancel drops the pending callback, if any.
func (t *IdleTimer) Cancel() {
	t.mu.Lock()
	t.stopLocked()
	t.mu.Unlock()
}

// Close cancels the timer for good. Later Resets are ignored.
func (t *IdleTimer) Close() {
	t.mu.Lock()
	t.stopLocked()
	t.closed = true
	t.mu.Unlock()
}

// Pending reports whether a callback is scheduled.
func (t *IdleTimer) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

func (t *IdleTimer) stopLocked() {
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *IdleTimer) fire(gen uint64) {
	t.mu.Lock()
	if t.closed || gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.timer = nil
	t.mu.Unlock()

	t.fn()
}
