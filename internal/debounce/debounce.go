// Package debounce delays propagation of rapidly changing input until it has been
// quiet for a fixed period. Only the trailing call of a burst runs.
package debounce

import (
	"sync"
	"time"

	"github.com/hotel-site/room-filter/internal/infrastructure/timeutil"
)

// Func is a trailing-edge debounced callback.
// At most one timer is in flight per instance.
type Func struct {
	mu    sync.Mutex
	clock timeutil.Clock
	delay time.Duration
	fn    func()
	timer timeutil.Timer

	// gen invalidates timers that fired after being superseded or cancelled.
	gen uint64
}

// New creates a debounced wrapper around fn.
// A nil clock uses the system clock; a negative delay is treated as zero.
func New(clock timeutil.Clock, delay time.Duration, fn func()) *Func {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	if delay < 0 {
		delay = 0
	}
	return &Func{
		clock: clock,
		delay: delay,
		fn:    fn,
	}
}

// Call schedules fn to run after the delay, discarding any earlier pending call.
func (d *Func) Call() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Cancel drops the pending call, if any.
func (d *Func) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

// Pending reports whether a call is scheduled.
func (d *Func) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Flush runs a pending call immediately on the caller's goroutine.
// It returns false when nothing was pending.
func (d *Func) Flush() bool {
	d.mu.Lock()
	if d.timer == nil {
		d.mu.Unlock()
		return false
	}
	d.stopLocked()
	d.mu.Unlock()

	d.fn()
	return true
}

func (d *Func) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn()
}

func (d *Func) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}
