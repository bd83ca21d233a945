package gate

// Config holds authorization gate configuration with environment variable
// support.
type Config struct {
	Enabled           bool     `env:"ENABLE_GOOGLE_AUTH" envDefault:"true"`
	AuthorizedDomains []string `env:"AUTHORIZED_DOMAINS" envSeparator:","`
}
