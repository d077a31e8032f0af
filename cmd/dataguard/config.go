package main

import (
	"github.com/dmitrymomot/dataguard/pkg/archive"
	"github.com/dmitrymomot/dataguard/pkg/httpserver"
	"github.com/dmitrymomot/dataguard/pkg/pg"
	"github.com/dmitrymomot/dataguard/pkg/redis"
	"github.com/dmitrymomot/dataguard/pkg/schedule"
	"github.com/dmitrymomot/dataguard/pkg/sqlite"
	"github.com/dmitrymomot/dataguard/pkg/validator"
	"github.com/dmitrymomot/dataguard/svc/fetch"
	"github.com/dmitrymomot/dataguard/svc/pipeline"
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Service  string `env:"APP_NAME" envDefault:"dataguard"`
	LogLevel string `env:"LOG_LEVEL"`

	// SnapshotHistory is how many past run snapshots are kept for reporting.
	SnapshotHistory int `env:"SNAPSHOT_HISTORY" envDefault:"20"`

	HTTP     httpserver.Config
	PG       pg.Config
	SQLite   sqlite.Config
	Redis    redis.Config
	Archive  archive.Config
	Fetch    fetch.Config
	Pipeline pipeline.Config
}

// Validate checks values env parsing cannot.
func (c *appConfig) Validate() error {
	_, schedErr := schedule.Parse(c.Pipeline.Schedule)
	return validator.Apply(
		validator.RequiredString("APP_ENV", c.Env),
		validator.RequiredString("APP_NAME", c.Service),
		validator.InRange("PIPELINE_MISSING_THRESHOLD", c.Pipeline.MissingThreshold, 0.0, 1.0),
		validator.MinNum("PIPELINE_CRYPTO_LIMIT", c.Pipeline.CryptoLimit, 1),
		validator.MinNum("PIPELINE_POSTS_LIMIT", c.Pipeline.PostsLimit, 1),
		validator.MinNum("SNAPSHOT_HISTORY", c.SnapshotHistory, 1),
		validator.Match("PIPELINE_SCHEDULE", schedErr == nil, "invalid_schedule", "must be '@every <duration>', 'hourly [:MM]' or 'daily HH:MM'"),
		validator.Match("ARCHIVE_S3_BUCKET", c.Archive.Driver != archive.DriverS3 || c.Archive.Bucket != "", "required", "is required for the s3 driver"),
	)
}
