package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"

	"github.com/dmitrymomot/dataguard/pkg/archive"
	"github.com/dmitrymomot/dataguard/pkg/clientip"
	"github.com/dmitrymomot/dataguard/pkg/config"
	"github.com/dmitrymomot/dataguard/pkg/httpserver"
	"github.com/dmitrymomot/dataguard/pkg/logger"
	"github.com/dmitrymomot/dataguard/pkg/pg"
	"github.com/dmitrymomot/dataguard/pkg/redis"
	"github.com/dmitrymomot/dataguard/pkg/requestid"
	"github.com/dmitrymomot/dataguard/pkg/sqlite"
	"github.com/dmitrymomot/dataguard/svc/fetch"
	"github.com/dmitrymomot/dataguard/svc/pipeline"
	"github.com/dmitrymomot/dataguard/svc/quarantine"
	"github.com/dmitrymomot/dataguard/svc/snapshot"
	"github.com/dmitrymomot/dataguard/svc/store"
)

// app holds the wired dependencies shared by the commands.
type app struct {
	cfg        appConfig
	log        *slog.Logger
	store      *store.Store
	snapshots  snapshot.Store
	quarantine *quarantine.Quarantine
	checks     []httpserver.Check
	closers    []func()
}

func loadConfig(envFiles []string) (appConfig, error) {
	if err := config.LoadEnv(envFiles...); err != nil {
		return appConfig{}, err
	}
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return appConfig{}, err
	}
	return cfg, nil
}

func newLogger(cfg appConfig) *slog.Logger {
	opts := []logger.Option{
		logger.WithOutput(os.Stderr),
		logger.WithEnvironment(cfg.Env, cfg.Service),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	}
	log := logger.New(opts...)
	logger.SetAsDefault(log)
	return log
}

// openStore connects to postgres when PG_CONN_URL is set and to sqlite
// otherwise, then migrates the schema.
func (a *app) openStore(ctx context.Context) error {
	var (
		db      *sql.DB
		dialect store.Dialect
	)
	if a.cfg.PG.Enabled() {
		pool, err := pg.Connect(ctx, a.cfg.PG)
		if err != nil {
			return err
		}
		db = pg.OpenDB(pool)
		dialect = store.DialectPostgres
		a.checks = append(a.checks, httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)})
		a.closers = append(a.closers, func() { _ = db.Close(); pool.Close() })
	} else {
		var err error
		db, err = sqlite.Open(ctx, a.cfg.SQLite)
		if err != nil {
			return err
		}
		dialect = store.DialectSQLite
		a.checks = append(a.checks, httpserver.Check{Name: "sqlite", Fn: sqlite.Healthcheck(db)})
		a.closers = append(a.closers, func() { _ = db.Close() })
	}

	s, err := store.New(db, dialect,
		store.WithLogger(a.log),
		store.WithMigrationsTable(a.cfg.PG.MigrationsTable),
	)
	if err != nil {
		return err
	}
	if err := s.Migrate(ctx); err != nil {
		return err
	}
	a.store = s
	return nil
}

// openSnapshots uses redis when REDIS_URL is set and memory otherwise.
func (a *app) openSnapshots(ctx context.Context) error {
	if !a.cfg.Redis.Enabled() {
		a.snapshots = snapshot.NewMemoryStore(a.cfg.SnapshotHistory)
		return nil
	}
	client, err := redis.Connect(ctx, a.cfg.Redis)
	if err != nil {
		return err
	}
	a.snapshots = snapshot.NewRedisStore(client, a.cfg.Redis.KeyPrefix, snapshot.WithHistory(a.cfg.SnapshotHistory))
	a.checks = append(a.checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
	a.closers = append(a.closers, func() { _ = client.Close() })
	return nil
}

func (a *app) openQuarantine(ctx context.Context) error {
	storage, err := archive.New(ctx, a.cfg.Archive)
	if err != nil {
		return err
	}
	a.quarantine = quarantine.New(storage, quarantine.WithLogger(a.log))
	return nil
}

// newApp wires the store, snapshots and quarantine. Anything opened before a
// failure is closed again.
func newApp(ctx context.Context, cfg appConfig, log *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}
	for _, open := range []func(context.Context) error{a.openStore, a.openSnapshots, a.openQuarantine} {
		if err := open(ctx); err != nil {
			a.close()
			return nil, err
		}
	}
	return a, nil
}

func (a *app) runner() (*pipeline.Runner, error) {
	return pipeline.New(a.cfg.Pipeline,
		fetch.New(a.cfg.Fetch, fetch.WithLogger(a.log)),
		a.store,
		pipeline.WithQuarantine(a.quarantine),
		pipeline.WithSnapshots(a.snapshots),
		pipeline.WithLogger(a.log),
	)
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

var errValidationFailed = errors.New("validation failed")
