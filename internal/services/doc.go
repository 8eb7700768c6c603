// Package services is the sole network boundary of the client.
//
// [Gateway] enumerates every remote operation the recommendation service
// exposes; [Client] is the typed HTTP implementation. The gateway is a pure
// transport shim: no retries, no caching, no batching, no response validation
// beyond JSON decoding. Anything stateful (query context, watchlist set,
// derived coverage) lives in the recstate package on top of this boundary.
//
// [SessionManager] owns token acquisition: primary /auth/login with a
// /auth/magic fallback, one token per process lifetime, no refresh.
package services
