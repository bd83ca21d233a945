package session

import "time"

// Config holds session cookie configuration with environment variable support.
type Config struct {
	// CookieName is the name of the durable session cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"ag_session"`

	// TTL is the maximum cookie lifetime. The cookie is re-marked durable on
	// every request, so this is a hard cap rather than an idle timeout.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"2160h"` // 90 days

	// CookiePath scopes the cookie to the application mount point.
	CookiePath string `env:"SESSION_COOKIE_PATH" envDefault:"/"`

	// CookieSecure restricts the cookie to HTTPS. Disable only in local dev.
	CookieSecure bool `env:"SESSION_COOKIE_SECURE" envDefault:"true"`
}

// Option is a functional option for configuring the session manager.
type Option func(*Manager)

// WithCookieName overrides the session cookie name.
func WithCookieName(name string) Option {
	return func(m *Manager) {
		if name != "" {
			m.name = name
		}
	}
}

// WithTTL overrides the maximum cookie lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithPath overrides the cookie path.
func WithPath(path string) Option {
	return func(m *Manager) {
		if path != "" {
			m.path = path
		}
	}
}

// WithSecure toggles the Secure cookie attribute.
func WithSecure(secure bool) Option {
	return func(m *Manager) {
		m.secure = secure
	}
}
