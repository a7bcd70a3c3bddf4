package perf

import (
	"sync"
	"time"

	goGuard "github.com/MrEthical07/goGuard"
	"go.uber.org/zap"
)

// Monitor times labelled intervals. Starting a label that is already running
// restarts it.
type Monitor struct {
	cfg config

	mu     sync.Mutex
	starts map[string]time.Time
}

// NewMonitor returns a Monitor with no running labels.
func NewMonitor(opts ...Option) *Monitor {
	return &Monitor{
		cfg:    newConfig(opts),
		starts: make(map[string]time.Time),
	}
}

// StartTiming records the start of label.
func (m *Monitor) StartTiming(label string) {
	now := m.cfg.clock.Now()
	m.mu.Lock()
	m.starts[label] = now
	m.mu.Unlock()
}

// EndTiming stops label, logs the elapsed time and returns it. A label that
// was never started reports false and logs nothing.
func (m *Monitor) EndTiming(label string) (time.Duration, bool) {
	m.mu.Lock()
	start, ok := m.starts[label]
	delete(m.starts, label)
	m.mu.Unlock()

	if !ok {
		return 0, false
	}

	elapsed := m.cfg.clock.Since(start)
	m.cfg.logger.Info("timing",
		zap.String("label", label),
		zap.Duration("elapsed", elapsed),
	)
	m.cfg.metrics.Observe(goGuard.MetricTimingLatency, elapsed)
	return elapsed, true
}

// Running returns the number of started, unfinished labels.
func (m *Monitor) Running() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.starts)
}

// Measure wraps fn so that each call is timed under label. A call that
// panics leaves its label running. Calls that overlap in time need distinct
// labels, since a running label is restarted by StartTiming.
func Measure[A, R any](m *Monitor, label string, fn func(A) R) func(A) R {
	return func(arg A) R {
		m.StartTiming(label)
		out := fn(arg)
		m.EndTiming(label)
		return out
	}
}
