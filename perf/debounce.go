package perf

import (
	"sync"
	"time"

	goGuard "github.com/MrEthical07/goGuard"
	"github.com/MrEthical07/goGuard/clock"
)

// Debouncer collapses bursts of calls into one trailing invocation.
type Debouncer[A any] struct {
	fn   func(A)
	wait time.Duration
	cfg  config

	mu    sync.Mutex
	timer clock.Timer
	gen   uint64
	arg   A
}

// Debounce wraps fn so that it runs once, wait after the last Call of a
// burst, with that last call's argument.
func Debounce[A any](fn func(A), wait time.Duration, opts ...Option) *Debouncer[A] {
	return &Debouncer[A]{
		fn:   fn,
		wait: wait,
		cfg:  newConfig(opts),
	}
}

// Call cancels any pending invocation and schedules a new one.
func (d *Debouncer[A]) Call(arg A) {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.arg = arg
	d.timer = d.cfg.clock.AfterFunc(d.wait, func() { d.fire(gen) })
	d.mu.Unlock()

	d.cfg.metrics.Inc(goGuard.MetricDebounceScheduled)
}

// Cancel drops the pending invocation, if any, and reports whether one was
// pending.
func (d *Debouncer[A]) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer == nil {
		return false
	}
	d.disarm()
	return true
}

// Flush runs the pending invocation immediately instead of waiting.
func (d *Debouncer[A]) Flush() bool {
	d.mu.Lock()
	if d.timer == nil {
		d.mu.Unlock()
		return false
	}
	arg := d.arg
	d.disarm()
	d.mu.Unlock()

	d.invoke(arg)
	return true
}

// Pending reports whether an invocation is scheduled.
func (d *Debouncer[A]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer[A]) fire(gen uint64) {
	d.mu.Lock()
	// A real timer can fire after Stop lost the race; gen tells us whether
	// this firing was superseded.
	if gen != d.gen || d.timer == nil {
		d.mu.Unlock()
		return
	}
	arg := d.arg
	d.timer = nil
	var zero A
	d.arg = zero
	d.mu.Unlock()

	d.invoke(arg)
}

// disarm must be called with d.mu held.
func (d *Debouncer[A]) disarm() {
	d.timer.Stop()
	d.timer = nil
	d.gen++
	var zero A
	d.arg = zero
}

func (d *Debouncer[A]) invoke(arg A) {
	d.cfg.metrics.Inc(goGuard.MetricDebounceFired)
	d.fn(arg)
}
