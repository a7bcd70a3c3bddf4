// Package storage provides the per-client key-value stores the route guard
// reads its token from.
//
// A [Store] exposes Get/Set/Remove by string key. The guard only calls Get;
// Set and Remove exist for the login and logout flows that own the token.
//
// Implementations:
//
//   - [Memory]: process-local map, scoped by client id.
//   - [Redis]: go-redis backed, keys laid out as <prefix>:<client>:<key>.
//   - [Cookie]: request-bound, reads request cookies and writes Set-Cookie.
//
// The client scope travels in the context ([WithClientID]).
//
// # What this package must NOT do
//
//   - Interpret token contents.
//   - Retry or cache failed reads; callers decide how to treat ErrUnavailable.
package storage
