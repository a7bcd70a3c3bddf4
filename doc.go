// Package goGuard provides a token-presence route guard for HTTP services that
// serve single-page applications, plus the shared infrastructure (metrics,
// audit, logging, clock) used by its companion packages.
//
// The guard answers one question: does the client's store hold a non-empty
// auth token under the configured key? If so the request proceeds; otherwise
// the client is redirected to the login path. Token contents are never
// inspected.
//
// # Architecture boundaries
//
// goGuard exposes [Engine], [Builder], [Config] and value types. HTTP
// translation lives in middleware/, token stores in storage/, the time source
// in clock/, and the debounce/throttle/memoize/timer/timing helpers in perf/.
//
// # What this package must NOT do
//
//   - Validate, refresh or expire tokens.
//   - Write or delete the token; login and logout flows own it.
//   - Surface store failures to callers; they are logged, counted and
//     treated as an absent token.
package goGuard
