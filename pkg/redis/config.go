package redis

import "time"

// Config holds the connection URL, retry settings and key prefix.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"`                               // ConnectionURL in the form "redis://:password@localhost:6379/0". Empty disables redis.
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`     // RetryAttempts is the number of connection attempts.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`    // RetryInterval is the pause between attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`  // ConnectTimeout bounds the whole connection phase.
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"dataguard"` // KeyPrefix namespaces every key written by the service.
}

// Enabled reports whether a connection URL is configured.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
