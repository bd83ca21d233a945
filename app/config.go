package app

import (
	"github.com/nickearl/authgate/core/credstore"
	"github.com/nickearl/authgate/core/gate"
	"github.com/nickearl/authgate/core/server"
	"github.com/nickearl/authgate/core/session"
	"github.com/nickearl/authgate/integration/google"
	"github.com/nickearl/authgate/integration/redis"
	"github.com/nickearl/authgate/integration/secretmanager"
)

// Config aggregates every component's configuration plus the application's
// own settings. Loaded once at startup from the environment.
type Config struct {
	Session   session.Config
	Credstore credstore.Config
	Gate      gate.Config
	Google    google.Config
	Redis     redis.Config
	Secrets   secretmanager.Config
	Server    server.Config

	AppName  string `env:"APP_NAME" envDefault:"authgate"`
	Env      string `env:"DEPLOY_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// BasePath prefixes every auth route, matching a reverse-proxy mount
	// point. Empty means the routes sit at the root.
	BasePath string `env:"BASE_PATH" envDefault:""`

	// EncryptionSecrets open credential records; the first entry encrypts
	// new records, the rest are tried on decrypt to support rotation.
	EncryptionSecrets []string `env:"ENCRYPTION_SECRETS,required" envSeparator:","`

	// SessionSecrets sign session cookies, with the same rotation scheme.
	SessionSecrets []string `env:"SESSION_SECRETS,required" envSeparator:","`
}

// IsDevelopment reports whether the process runs in a development
// environment.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}
