package goGuard

import (
	"sync/atomic"
	"time"
)

// MetricID identifies one counter or histogram tracked by Metrics.
type MetricID uint16

const (
	// MetricGuardAllowed counts guard evaluations that found a token.
	MetricGuardAllowed MetricID = iota
	// MetricGuardRedirected counts guard evaluations that redirected to login.
	MetricGuardRedirected
	// MetricGuardStoreFailure counts token reads that failed and were treated as absent.
	MetricGuardStoreFailure
	// MetricDebounceScheduled counts debounced calls that (re)armed the trailing timer.
	MetricDebounceScheduled
	// MetricDebounceFired counts trailing debounced invocations.
	MetricDebounceFired
	// MetricThrottleAdmitted counts throttled calls that ran.
	MetricThrottleAdmitted
	// MetricThrottleDropped counts throttled calls dropped during cooldown.
	MetricThrottleDropped
	// MetricMemoHit counts memoized calls served from cache.
	MetricMemoHit
	// MetricMemoMiss counts memoized calls that computed a result.
	MetricMemoMiss
	// MetricMemoEvicted counts FIFO evictions.
	MetricMemoEvicted
	// MetricTimerScheduled counts timers registered with an IntervalManager.
	MetricTimerScheduled
	// MetricTimerCleared counts timers cancelled through an IntervalManager.
	MetricTimerCleared
	// MetricFallbackUsed counts wrapped calls whose fault was replaced by a fallback.
	MetricFallbackUsed
	// MetricImageFallback counts image loads that resolved to the fallback.
	MetricImageFallback
	// MetricMediaCleanupFailure counts media cleanups that hit an error.
	MetricMediaCleanupFailure
	// MetricGuardLatency is the guard evaluation latency histogram.
	MetricGuardLatency
	// MetricTimingLatency is the histogram of durations closed by EndTiming.
	MetricTimingLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
	sumNs   uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics is a fixed set of lock-free counters and latency histograms.
// A nil or disabled Metrics ignores every update.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot is a point-in-time copy of Metrics. Histogram slices hold
// non-cumulative bucket counts; HistogramSums holds the total observed
// duration per histogram.
type MetricsSnapshot struct {
	Counters      map[MetricID]uint64
	Histograms    map[MetricID][]uint64
	HistogramSums map[MetricID]time.Duration
}

// NewMetrics returns Metrics configured by cfg.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether counters are recorded.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// LatencyEnabled reports whether histograms are recorded.
func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

// Inc adds one to the counter id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records d into the histogram id. Non-histogram ids are ignored.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || !isHistogram(id) {
		return
	}

	if d < 0 {
		d = 0
	}
	h := &m.histograms[id]
	atomic.AddUint64(&h.buckets[bucketIndex(d)], 1)
	atomic.AddUint64(&h.sumNs, uint64(d))
}

// Value returns the current value of the counter id.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies every counter and, when latency is enabled, every histogram.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:      map[MetricID]uint64{},
			Histograms:    map[MetricID][]uint64{},
			HistogramSums: map[MetricID]time.Duration{},
		}
	}

	s := MetricsSnapshot{
		Counters:      make(map[MetricID]uint64, int(metricIDCount)),
		Histograms:    make(map[MetricID][]uint64, len(histogramIDs)),
		HistogramSums: make(map[MetricID]time.Duration, len(histogramIDs)),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		if isHistogram(id) {
			continue
		}
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		for _, id := range histogramIDs {
			buckets := make([]uint64, histBucketCount)
			for i := 0; i < histBucketCount; i++ {
				buckets[i] = atomic.LoadUint64(&m.histograms[id].buckets[i])
			}
			s.Histograms[id] = buckets
			s.HistogramSums[id] = time.Duration(atomic.LoadUint64(&m.histograms[id].sumNs))
		}
	}

	return s
}

var histogramIDs = [...]MetricID{MetricGuardLatency, MetricTimingLatency}

func isHistogram(id MetricID) bool {
	return id == MetricGuardLatency || id == MetricTimingLatency
}

// histBounds are the inclusive upper bounds of the first seven buckets; the
// last bucket is unbounded.
var histBounds = [histBucketCount - 1]time.Duration{
	5 * time.Millisecond,
	10 * time.Millisecond,
	25 * time.Millisecond,
	50 * time.Millisecond,
	100 * time.Millisecond,
	250 * time.Millisecond,
	500 * time.Millisecond,
}

func bucketIndex(d time.Duration) int {
	for i, bound := range histBounds {
		if d <= bound {
			return i
		}
	}
	return histBucketCount - 1
}
