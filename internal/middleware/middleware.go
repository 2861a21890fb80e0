// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as request logging, request IDs, CORS, tracing,
// metrics, and panic recovery
package middleware
