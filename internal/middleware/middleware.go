// Package middleware holds the cross-cutting request handling: spam path
// filtering, request ids, tracing, Clerk authentication, admin context and
// tenant resolution, rate limiting, and the global error handler.
package middleware
