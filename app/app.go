// Package app assembles the auth service: it owns the explicit dependency
// context passed to every handler, the HTTP router, and the login, callback,
// revocation, and health routes.
package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/nickearl/authgate/core/gate"
	"github.com/nickearl/authgate/core/session"
)

// Provider is the slice of the identity provider client the HTTP layer
// uses, satisfied by the Google integration client.
type Provider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*session.ProviderToken, error)
}

// App is the explicit context object holding every collaborator, constructed
// once at process start and shared by all request handlers. No hidden
// module-level state.
type App struct {
	config   Config
	sessions *session.Manager
	gate     *gate.Gate
	provider Provider
	logger   *slog.Logger

	healthChecks []func(context.Context) error
}

// Option is a functional option for configuring the app.
type Option func(*App)

// WithLogger sets the application logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithHealthChecks registers dependency probes served on /healthz.
func WithHealthChecks(checks ...func(context.Context) error) Option {
	return func(a *App) {
		a.healthChecks = append(a.healthChecks, checks...)
	}
}

// New creates the application context from its collaborators.
func New(cfg Config, sessions *session.Manager, g *gate.Gate, provider Provider, opts ...Option) (*App, error) {
	if sessions == nil {
		return nil, errors.New("session manager is required")
	}
	if g == nil {
		return nil, errors.New("authorization gate is required")
	}
	if provider == nil {
		return nil, errors.New("identity provider client is required")
	}

	cfg.BasePath = strings.TrimRight(cfg.BasePath, "/")

	a := &App{
		config:   cfg,
		sessions: sessions,
		gate:     g,
		provider: provider,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// path prefixes a route with the configured base path.
func (a *App) path(p string) string {
	return a.config.BasePath + p
}
