package perf

import (
	"time"

	goGuard "github.com/MrEthical07/goGuard"
	"golang.org/x/time/rate"
)

// Throttler admits at most one call per window, on the leading edge.
type Throttler[A any] struct {
	fn      func(A)
	limiter *rate.Limiter
	cfg     config
}

// Throttle wraps fn so that the first Call runs immediately and opens a
// cooldown of limit; calls during the cooldown are dropped, not queued.
// A non-positive limit admits every call.
func Throttle[A any](fn func(A), limit time.Duration, opts ...Option) *Throttler[A] {
	// Burst 1 refilled once per limit: a token is available again exactly
	// limit after the last admitted call.
	return &Throttler[A]{
		fn:      fn,
		limiter: rate.NewLimiter(rate.Every(limit), 1),
		cfg:     newConfig(opts),
	}
}

// Call runs fn when the window is open and reports whether it did.
func (t *Throttler[A]) Call(arg A) bool {
	if !t.limiter.AllowN(t.cfg.clock.Now(), 1) {
		t.cfg.metrics.Inc(goGuard.MetricThrottleDropped)
		return false
	}

	t.cfg.metrics.Inc(goGuard.MetricThrottleAdmitted)
	t.fn(arg)
	return true
}
