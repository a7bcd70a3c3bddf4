// Package perf collects small runtime helpers for services and clients that
// need to tame call frequency, bound caches, track timers and absorb faults.
//
// # Helpers
//
//   - [Debounce], [Throttle]: call-frequency control.
//   - [IntervalManager], [Scope], [NewScopedManager], [CleanupMedia]: timer
//     and media handle bookkeeping.
//   - [LazyLoadImage], [WithErrorHandling], [SafeAsync]: fallback-on-failure
//     wrappers.
//   - [Memoize]: FIFO-bounded result cache.
//   - [IsInViewport]: rectangle containment.
//   - [Monitor], [Measure]: label-keyed ad-hoc timing.
//
// Every stateful helper owns its own state and is safe for concurrent use.
// Locks are never held while user callbacks run. Helpers share logger, clock
// and metrics through [Option]; [WithEngine] takes all three from a
// goGuard.Engine.
package perf
