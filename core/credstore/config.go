package credstore

import "time"

// Config holds credential store configuration with environment variable
// support. The namespace prefixes every cache key so multiple deployments
// can share one Redis instance.
type Config struct {
	Namespace string        `env:"CACHE_NAMESPACE,required"`
	TTL       time.Duration `env:"CREDENTIAL_TTL" envDefault:"720h"` // 30 days
}
