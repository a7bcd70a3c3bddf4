// Package prometheus renders goGuard metrics in the Prometheus text
// exposition format.
//
// [NewExporter] reads an engine's snapshot on every scrape. Counters are
// named goguard_*_total; the guard and timing histograms are
// goguard_guard_latency_seconds and goguard_timing_seconds.
//
// # What this package must NOT do
//
//   - Register with a global registry. Callers mount [Exporter.Handler].
//   - Mutate engine state.
package prometheus
