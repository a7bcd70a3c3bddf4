// Package middleware exposes HTTP adapters for the goGuard route guard.
//
// # Guards
//
//   - [Guard]: evaluates the engine and redirects clients without a token.
//   - [RequireToken]: Guard with default options.
//   - [RequireTokenAPI]: answers 401 JSON instead of redirecting, for XHR routes.
//   - [Recovery]: converts handler panics into logged 500 responses.
//
// Each guard resolves the per-request store, calls Engine.Evaluate and, on
// allow, injects the token into the request context ([TokenFromContext]).
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// decide anything itself. Allow or redirect comes from Engine.Evaluate.
//
// # What this package must NOT do
//
//   - Inspect or validate token contents.
//   - Write the token store.
package middleware
