package goGuard

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsDisabledNoIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	m.Inc(MetricGuardAllowed)

	if got := m.Value(MetricGuardAllowed); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.Inc(MetricGuardAllowed)
	m.Observe(MetricGuardLatency, time.Millisecond)

	if m.Enabled() || m.LatencyEnabled() {
		t.Fatal("nil metrics must report disabled")
	}
	if got := m.Value(MetricGuardAllowed); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if snap := m.Snapshot(); len(snap.Counters) != 0 {
		t.Fatalf("expected empty snapshot, got %v", snap.Counters)
	}
}

func TestMetricsEnabledIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricMemoHit)
	m.Inc(MetricMemoHit)
	m.Inc(MetricMemoHit)

	if got := m.Value(MetricMemoHit); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestMetricsConcurrentIncrementSafe(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const goroutines = 32
	const perG = 4000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perG; j++ {
				m.Inc(MetricThrottleDropped)
			}
		}()
	}
	wg.Wait()

	want := uint64(goroutines * perG)
	if got := m.Value(MetricThrottleDropped); got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
}

func TestMetricsHistogramBucketCorrectness(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})

	observations := []time.Duration{
		5 * time.Millisecond,
		10 * time.Millisecond,
		25 * time.Millisecond,
		50 * time.Millisecond,
		100 * time.Millisecond,
		250 * time.Millisecond,
		500 * time.Millisecond,
		700 * time.Millisecond,
	}

	for _, d := range observations {
		m.Observe(MetricTimingLatency, d)
	}

	snap := m.Snapshot()
	buckets := snap.Histograms[MetricTimingLatency]
	if len(buckets) != 8 {
		t.Fatalf("expected 8 buckets, got %d", len(buckets))
	}
	for i, v := range buckets {
		if v != 1 {
			t.Fatalf("bucket %d expected 1, got %d", i, v)
		}
	}
	if other := snap.Histograms[MetricGuardLatency]; other[0] != 0 {
		t.Fatalf("expected guard histogram untouched, got %v", other)
	}
}

func TestMetricsHistogramBucketBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		d      time.Duration
		bucket int
	}{
		{name: "zero", d: 0, bucket: 0},
		{name: "exact first bound", d: 5 * time.Millisecond, bucket: 0},
		{name: "just above first bound", d: 5*time.Millisecond + time.Microsecond, bucket: 1},
		{name: "sub-millisecond tail", d: 5900 * time.Microsecond, bucket: 1},
		{name: "just above 500ms", d: 500*time.Millisecond + time.Nanosecond, bucket: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})
			m.Observe(MetricGuardLatency, tt.d)

			buckets := m.Snapshot().Histograms[MetricGuardLatency]
			for i, v := range buckets {
				want := uint64(0)
				if i == tt.bucket {
					want = 1
				}
				if v != want {
					t.Fatalf("bucket %d expected %d, got %d (all %v)", i, want, v, buckets)
				}
			}
		})
	}
}

func TestMetricsHistogramSum(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})
	m.Observe(MetricTimingLatency, 1500*time.Microsecond)
	m.Observe(MetricTimingLatency, 2*time.Millisecond)
	m.Observe(MetricTimingLatency, -time.Second)

	snap := m.Snapshot()
	if got := snap.HistogramSums[MetricTimingLatency]; got != 3500*time.Microsecond {
		t.Fatalf("expected sum 3.5ms, got %v", got)
	}
	if got := snap.HistogramSums[MetricGuardLatency]; got != 0 {
		t.Fatalf("expected guard sum 0, got %v", got)
	}
}

func TestMetricsObserveIgnoresCounters(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})
	m.Observe(MetricMemoHit, time.Millisecond)

	if got := m.Value(MetricMemoHit); got != 0 {
		t.Fatalf("Observe on a counter id must not touch it, got %d", got)
	}
}

func TestMetricsSnapshotConsistency(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})
	m.Inc(MetricGuardAllowed)
	m.Inc(MetricGuardRedirected)
	m.Inc(MetricGuardRedirected)
	m.Observe(MetricGuardLatency, 2*time.Millisecond)

	snap := m.Snapshot()

	if snap.Counters[MetricGuardAllowed] != 1 {
		t.Fatalf("expected MetricGuardAllowed=1 got %d", snap.Counters[MetricGuardAllowed])
	}
	if snap.Counters[MetricGuardRedirected] != 2 {
		t.Fatalf("expected MetricGuardRedirected=2 got %d", snap.Counters[MetricGuardRedirected])
	}
	if _, ok := snap.Counters[MetricGuardLatency]; ok {
		t.Fatal("histogram ids must not appear as counters")
	}
	if snap.Histograms[MetricGuardLatency][0] != 1 {
		t.Fatalf("expected first histogram bucket=1 got %d", snap.Histograms[MetricGuardLatency][0])
	}
}

func TestMetricsLatencyDisabledOmitsHistograms(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Observe(MetricGuardLatency, time.Millisecond)

	if snap := m.Snapshot(); len(snap.Histograms) != 0 {
		t.Fatalf("expected no histograms, got %v", snap.Histograms)
	}
}
