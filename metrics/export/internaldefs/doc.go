// Package internaldefs holds the metric names, help strings and bucket
// layout shared by the goGuard exporters, so Prometheus and OTel output
// stay in lockstep.
//
// # What this package must NOT do
//
//   - Import an exporter package.
//   - Perform I/O.
package internaldefs
