// Package otel publishes goGuard metrics through an OpenTelemetry Meter.
//
// [NewExporter] registers one observable counter per goGuard counter and,
// per histogram, one observable gauge per cumulative bucket plus a count
// gauge. A single callback takes one snapshot per collection.
//
// # What this package must NOT do
//
//   - Own the MeterProvider. Callers supply the Meter.
//   - Mutate engine state.
package otel
