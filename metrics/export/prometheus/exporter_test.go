package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	goGuard "github.com/MrEthical07/goGuard"
	"github.com/MrEthical07/goGuard/storage"
)

type fakeSource struct {
	snapshot goGuard.MetricsSnapshot
	dropped  uint64
}

func (f fakeSource) MetricsSnapshot() goGuard.MetricsSnapshot { return f.snapshot }
func (f fakeSource) AuditDropped() uint64                     { return f.dropped }

func TestRenderEmptyWhenMetricsDisabled(t *testing.T) {
	exp := NewExporterFromSource(fakeSource{
		snapshot: goGuard.MetricsSnapshot{
			Counters:   map[goGuard.MetricID]uint64{},
			Histograms: map[goGuard.MetricID][]uint64{},
		},
	})

	if got := exp.Render(); got != "" {
		t.Fatalf("expected empty output, got:\n%s", got)
	}
}

func TestRenderCountersAndHistograms(t *testing.T) {
	exp := NewExporterFromSource(fakeSource{
		snapshot: goGuard.MetricsSnapshot{
			Counters: map[goGuard.MetricID]uint64{
				goGuard.MetricGuardRedirected: 7,
				goGuard.MetricMemoHit:         3,
			},
			Histograms: map[goGuard.MetricID][]uint64{
				goGuard.MetricGuardLatency: {1, 2, 3, 4, 5, 6, 7, 8},
			},
			HistogramSums: map[goGuard.MetricID]time.Duration{
				goGuard.MetricGuardLatency: 1500 * time.Millisecond,
			},
		},
		dropped: 2,
	})

	out := exp.Render()
	for _, want := range []string{
		"# TYPE goguard_guard_redirected_total counter",
		"goguard_guard_redirected_total 7",
		"goguard_memo_hit_total 3",
		"goguard_guard_allowed_total 0",
		`goguard_guard_latency_seconds_bucket{le="0.005"} 1`,
		`goguard_guard_latency_seconds_bucket{le="+Inf"} 36`,
		"goguard_guard_latency_seconds_count 36",
		"goguard_guard_latency_seconds_sum 1.5",
		"goguard_timing_seconds_sum 0",
		`goguard_timing_seconds_bucket{le="+Inf"} 0`,
		"goguard_audit_dropped_total 2",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestHandlerServesEngineMetrics(t *testing.T) {
	engine, err := goGuard.New().WithStore(storage.NewMemory()).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	engine.Check(t.Context())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	NewExporter(engine).Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "text/plain") {
		t.Fatalf("expected prometheus content type, got %q", got)
	}
	if !strings.Contains(rec.Body.String(), "goguard_guard_redirected_total 1") {
		t.Fatalf("expected one redirect, got:\n%s", rec.Body.String())
	}
}

func TestEscapeHelp(t *testing.T) {
	if got := escapeHelp("a\\b\nc"); got != `a\\b\nc` {
		t.Fatalf("got %q", got)
	}
}

func BenchmarkRender(b *testing.B) {
	m := goGuard.NewMetrics(goGuard.MetricsConfig{Enabled: true, EnableLatencyHistograms: true})
	for i := 0; i < 1000; i++ {
		m.Inc(goGuard.MetricGuardAllowed)
		m.Observe(goGuard.MetricGuardLatency, time.Duration(i)*time.Microsecond)
	}
	exp := NewExporterFromSource(fakeSource{snapshot: m.Snapshot()})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = exp.Render()
	}
}
