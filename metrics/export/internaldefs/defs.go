package internaldefs

import (
	goGuard "github.com/MrEthical07/goGuard"
)

// Def names one exported series.
type Def struct {
	ID   goGuard.MetricID
	Name string
	Help string
}

// AuditDropped is the series fed from Engine.AuditDropped rather than the
// metrics snapshot.
var AuditDropped = Def{
	Name: "goguard_audit_dropped_total",
	Help: "Audit events dropped because the dispatcher buffer was full.",
}

// Counters lists every counter in export order.
var Counters = []Def{
	{ID: goGuard.MetricGuardAllowed, Name: "goguard_guard_allowed_total", Help: "Guard evaluations that found a token."},
	{ID: goGuard.MetricGuardRedirected, Name: "goguard_guard_redirected_total", Help: "Guard evaluations redirected to login."},
	{ID: goGuard.MetricGuardStoreFailure, Name: "goguard_guard_store_failure_total", Help: "Token reads that failed and were treated as absent."},
	{ID: goGuard.MetricDebounceScheduled, Name: "goguard_debounce_scheduled_total", Help: "Debounced calls that rearmed the trailing timer."},
	{ID: goGuard.MetricDebounceFired, Name: "goguard_debounce_fired_total", Help: "Trailing debounced invocations."},
	{ID: goGuard.MetricThrottleAdmitted, Name: "goguard_throttle_admitted_total", Help: "Throttled calls that ran."},
	{ID: goGuard.MetricThrottleDropped, Name: "goguard_throttle_dropped_total", Help: "Throttled calls dropped during cooldown."},
	{ID: goGuard.MetricMemoHit, Name: "goguard_memo_hit_total", Help: "Memoized calls served from cache."},
	{ID: goGuard.MetricMemoMiss, Name: "goguard_memo_miss_total", Help: "Memoized calls that computed a result."},
	{ID: goGuard.MetricMemoEvicted, Name: "goguard_memo_evicted_total", Help: "Memo entries evicted in insertion order."},
	{ID: goGuard.MetricTimerScheduled, Name: "goguard_timer_scheduled_total", Help: "Timers registered with an interval manager."},
	{ID: goGuard.MetricTimerCleared, Name: "goguard_timer_cleared_total", Help: "Timers cancelled through an interval manager."},
	{ID: goGuard.MetricFallbackUsed, Name: "goguard_fallback_used_total", Help: "Wrapped calls whose failure was replaced by a fallback."},
	{ID: goGuard.MetricImageFallback, Name: "goguard_image_fallback_total", Help: "Image loads that resolved to the fallback."},
	{ID: goGuard.MetricMediaCleanupFailure, Name: "goguard_media_cleanup_failure_total", Help: "Media cleanups that hit an error."},
}

// Histograms lists every latency histogram in export order.
var Histograms = []Def{
	{ID: goGuard.MetricGuardLatency, Name: "goguard_guard_latency_seconds", Help: "Guard evaluation latency."},
	{ID: goGuard.MetricTimingLatency, Name: "goguard_timing_seconds", Help: "Durations closed by Monitor.EndTiming."},
}

// Bucket is one upper bound of the fixed latency layout.
type Bucket struct {
	// Le is the Prometheus le label value.
	Le string
	// Suffix is Le made safe for an instrument name.
	Suffix string
}

// Buckets mirrors the eight bins kept by goGuard.Metrics.
var Buckets = [8]Bucket{
	{Le: "0.005", Suffix: "0_005"},
	{Le: "0.01", Suffix: "0_01"},
	{Le: "0.025", Suffix: "0_025"},
	{Le: "0.05", Suffix: "0_05"},
	{Le: "0.1", Suffix: "0_1"},
	{Le: "0.25", Suffix: "0_25"},
	{Le: "0.5", Suffix: "0_5"},
	{Le: "+Inf", Suffix: "inf"},
}

// Cumulative turns raw per-bin counts into running totals. Missing bins
// count as zero and extra bins are ignored.
func Cumulative(raw []uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := range out {
		if i < len(raw) {
			running += raw[i]
		}
		out[i] = running
	}
	return out
}
