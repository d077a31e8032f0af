package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// Config locates the database file.
type Config struct {
	Path        string `env:"SQLITE_PATH" envDefault:"dataguard.db"` // Path is a file path or ":memory:".
	BusyTimeout int    `env:"SQLITE_BUSY_TIMEOUT_MS" envDefault:"5000"`
}

// Open opens the database and pings it. In-memory databases are limited to a
// single connection so every query sees the same database.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	if cfg.Path == "" {
		return nil, ErrEmptyPath
	}

	db, err := sql.Open("sqlite3", dsn(cfg))
	if err != nil {
		return nil, errors.Join(ErrFailedToOpen, err)
	}
	if isMemory(cfg.Path) {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrFailedToOpen, err)
	}
	return db, nil
}

// Healthcheck returns a readiness probe for db.
func Healthcheck(db *sql.DB) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// IsConstraintError reports a unique, primary key or check constraint violation.
func IsConstraintError(err error) bool {
	var sqlErr sqlite3.Error
	return errors.As(err, &sqlErr) && sqlErr.Code == sqlite3.ErrConstraint
}

func dsn(cfg Config) string {
	params := url.Values{}
	params.Set("_foreign_keys", "on")
	if cfg.BusyTimeout > 0 {
		params.Set("_busy_timeout", strconv.Itoa(cfg.BusyTimeout))
	}
	if !isMemory(cfg.Path) {
		params.Set("_journal_mode", "WAL")
	}

	base := cfg.Path
	if !strings.HasPrefix(base, "file:") {
		base = "file:" + base
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + params.Encode()
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}
