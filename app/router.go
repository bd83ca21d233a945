package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nickearl/authgate/core/healthcheck"
	"github.com/nickearl/authgate/middleware"
)

// Router builds the HTTP surface. The session bootstrapper runs on every
// request so even unauthenticated visitors receive a durable session
// identifier before any handler logic.
func (a *App) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(a.logger))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(a.sessions, a.logger))

		r.Get(a.path("/login"), a.handleLogin)
		r.Get(a.path("/login/google/authorized"), a.handleCallback)
		r.Get(a.path("/login-success"), a.handleLoginSuccess)
		r.Get(a.path("/login/revoke"), a.handleRevoke)
	})

	// Probes stay outside the session scope so health checks and scrapes
	// never allocate sessions.
	r.Get("/healthz", healthcheck.Handler(a.logger, a.healthChecks...))
	r.Handle("/metrics", promhttp.Handler())

	return r
}
