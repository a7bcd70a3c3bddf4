package perf

import (
	"context"
	"sync"
	"time"

	goGuard "github.com/MrEthical07/goGuard"
	"github.com/MrEthical07/goGuard/clock"
	"github.com/google/uuid"
)

// minInterval is the floor applied to non-positive repeating periods.
const minInterval = time.Millisecond

// TimerHandle identifies a timer registered with an IntervalManager. The zero
// handle is never issued.
type TimerHandle uuid.UUID

// String returns the handle in canonical UUID form.
func (h TimerHandle) String() string {
	return uuid.UUID(h).String()
}

// IntervalManager tracks repeating and one-shot timers so they can be
// cancelled individually or all at once.
type IntervalManager struct {
	cfg config

	mu        sync.Mutex
	closed    bool
	intervals map[TimerHandle]*intervalEntry
	timeouts  map[TimerHandle]clock.Timer
}

type intervalEntry struct {
	timer clock.Timer
}

// NewIntervalManager returns an empty manager.
func NewIntervalManager(opts ...Option) *IntervalManager {
	return &IntervalManager{
		cfg:       newConfig(opts),
		intervals: make(map[TimerHandle]*intervalEntry),
		timeouts:  make(map[TimerHandle]clock.Timer),
	}
}

// SetInterval runs fn every period until cleared. A closed manager schedules
// nothing and returns the zero handle.
func (m *IntervalManager) SetInterval(fn func(), period time.Duration) TimerHandle {
	if period <= 0 {
		period = minInterval
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return TimerHandle{}
	}
	h := TimerHandle(uuid.New())
	e := &intervalEntry{}
	m.intervals[h] = e
	m.arm(h, e, fn, period)
	m.mu.Unlock()

	m.cfg.metrics.Inc(goGuard.MetricTimerScheduled)
	return h
}

// arm must be called with m.mu held.
func (m *IntervalManager) arm(h TimerHandle, e *intervalEntry, fn func(), period time.Duration) {
	e.timer = m.cfg.clock.AfterFunc(period, func() {
		m.mu.Lock()
		if cur, ok := m.intervals[h]; !ok || cur != e {
			m.mu.Unlock()
			return
		}
		m.arm(h, e, fn, period)
		m.mu.Unlock()

		fn()
	})
}

// SetTimeout runs fn once after delay unless cleared first. The handle is
// forgotten before fn runs.
func (m *IntervalManager) SetTimeout(fn func(), delay time.Duration) TimerHandle {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return TimerHandle{}
	}
	h := TimerHandle(uuid.New())
	m.timeouts[h] = m.cfg.clock.AfterFunc(delay, func() {
		m.mu.Lock()
		_, ok := m.timeouts[h]
		delete(m.timeouts, h)
		m.mu.Unlock()

		if ok {
			fn()
		}
	})
	m.mu.Unlock()

	m.cfg.metrics.Inc(goGuard.MetricTimerScheduled)
	return h
}

// ClearInterval cancels a repeating timer. Unknown handles are ignored.
func (m *IntervalManager) ClearInterval(h TimerHandle) {
	m.mu.Lock()
	e, ok := m.intervals[h]
	if ok {
		e.timer.Stop()
		delete(m.intervals, h)
	}
	m.mu.Unlock()

	if ok {
		m.cfg.metrics.Inc(goGuard.MetricTimerCleared)
	}
}

// ClearTimeout cancels a one-shot timer. Unknown or already fired handles
// are ignored.
func (m *IntervalManager) ClearTimeout(h TimerHandle) {
	m.mu.Lock()
	t, ok := m.timeouts[h]
	if ok {
		t.Stop()
		delete(m.timeouts, h)
	}
	m.mu.Unlock()

	if ok {
		m.cfg.metrics.Inc(goGuard.MetricTimerCleared)
	}
}

// ClearAll cancels every tracked timer, repeating ones first, and leaves the
// manager empty but usable.
func (m *IntervalManager) ClearAll() {
	m.mu.Lock()
	n := m.clearLocked()
	m.mu.Unlock()

	for i := 0; i < n; i++ {
		m.cfg.metrics.Inc(goGuard.MetricTimerCleared)
	}
}

// Close clears every timer and makes later registrations no-ops.
func (m *IntervalManager) Close() {
	m.mu.Lock()
	m.closed = true
	n := m.clearLocked()
	m.mu.Unlock()

	for i := 0; i < n; i++ {
		m.cfg.metrics.Inc(goGuard.MetricTimerCleared)
	}
}

func (m *IntervalManager) clearLocked() int {
	n := 0
	for h, e := range m.intervals {
		e.timer.Stop()
		delete(m.intervals, h)
		n++
	}
	for h, t := range m.timeouts {
		t.Stop()
		delete(m.timeouts, h)
		n++
	}
	return n
}

// Pending returns the number of tracked repeating and one-shot timers.
func (m *IntervalManager) Pending() (intervals, timeouts int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.intervals), len(m.timeouts)
}

// Scope runs fn with a fresh manager and closes it when fn returns or
// panics, so no timer registered inside fn outlives the call.
func Scope(fn func(m *IntervalManager), opts ...Option) {
	m := NewIntervalManager(opts...)
	defer m.Close()
	fn(m)
}

// NewScopedManager returns a manager that closes itself once ctx is done.
func NewScopedManager(ctx context.Context, opts ...Option) *IntervalManager {
	m := NewIntervalManager(opts...)
	if ctx != nil {
		context.AfterFunc(ctx, m.Close)
	}
	return m
}
