// Package middleware provides HTTP middleware for the authgate service.
//
// The session middleware is the bootstrapper: it runs on every request,
// guarantees a durable session identifier exists before any handler logic,
// and rewrites the signed cookie so the session stays long-lived.
// Unauthenticated visitors receive a session identity too, so a later login
// can be correlated with their earlier requests.
//
// The remaining middleware cover cross-cutting concerns: request IDs for
// log correlation and structured request logging.
//
// All middleware use the standard func(http.Handler) http.Handler shape and
// compose with chi's Use.
package middleware
