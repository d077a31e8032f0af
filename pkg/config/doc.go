// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv (dotenv files) and
// github.com/caarlos0/env/v11 (struct tags). Each configuration type is parsed
// once and cached for the lifetime of the process; ResetCache clears the cache
// in tests. Types whose pointer implements Validator are validated before they
// are cached, so a bad value fails Load instead of surfacing later.
//
//	type Config struct {
//		Env      string `env:"APP_ENV" envDefault:"development"`
//		Postgres pg.Config
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
package config
