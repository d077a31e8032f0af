package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/dataguard/pkg/logger"
	"github.com/dmitrymomot/dataguard/pkg/pg"
	"github.com/dmitrymomot/dataguard/pkg/sqlite"
)

//go:embed migrations
var migrations embed.FS

// Dialect selects SQL placeholders and the migration set.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

// Table names.
const (
	TableCryptocurrencies = "cryptocurrency_data"
	TablePosts            = "posts_data"
	TableRuns             = "api_runs"
)

// Tables lists every table managed by the store.
var Tables = []string{TableCryptocurrencies, TablePosts, TableRuns}

// Store persists validated batches and run logs in a relational database.
type Store struct {
	db      *sql.DB
	dialect Dialect
	table   string
	log     *slog.Logger
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMigrationsTable sets the goose version table name.
func WithMigrationsTable(name string) Option {
	return func(s *Store) { s.table = name }
}

// WithClock sets the time source for fetched_at and created_at values.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New wraps db. The dialect must match the driver behind db.
func New(db *sql.DB, dialect Dialect, opts ...Option) (*Store, error) {
	if db == nil {
		return nil, ErrNilDB
	}
	switch dialect {
	case DialectPostgres, DialectSQLite:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDialect, dialect)
	}

	s := &Store{
		db:      db,
		dialect: dialect,
		table:   "schema_migrations",
		log:     logger.Discard(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("store"), slog.String("dialect", string(dialect)))
	return s, nil
}

// Migrate creates or upgrades the schema.
func (s *Store) Migrate(ctx context.Context) error {
	return pg.RunGoose(ctx, s.db, string(s.dialect), migrations, "migrations/"+string(s.dialect), s.table, s.log)
}

// Healthcheck pings the database.
func (s *Store) Healthcheck(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	return nil
}

// Stats returns the row count of every managed table.
func (s *Store) Stats(ctx context.Context) (map[string]int, error) {
	stats := make(map[string]int, len(Tables))
	for _, table := range Tables {
		var n int
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, queryError(fmt.Errorf("count %s: %w", table, err))
		}
		stats[table] = n
	}
	return stats, nil
}

// Recent returns up to limit of the latest rows of a managed table, newest first.
func (s *Store) Recent(ctx context.Context, table string, limit int) ([]map[string]any, error) {
	if !isTable(table) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	if limit <= 0 {
		limit = 5
	}

	rows, err := s.db.QueryContext(ctx, s.rebind("SELECT * FROM "+table+" ORDER BY id DESC LIMIT ?"), limit)
	if err != nil {
		return nil, queryError(err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, queryError(err)
	}

	var out []map[string]any
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, queryError(err)
		}
		row := make(map[string]any, len(cols))
		for i, c := range cols {
			if b, ok := vals[i].([]byte); ok {
				row[c] = string(b)
			} else {
				row[c] = vals[i]
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(err)
	}
	return out, nil
}

// rebind turns ? placeholders into $1, $2, ... for postgres.
func (s *Store) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// queryError tags err with ErrNotMigrated when a managed table is missing and
// with ErrQueryFailed otherwise.
func queryError(err error) error {
	if pg.IsUndefinedTableError(err) || sqlite.IsUndefinedTableError(err) {
		return errors.Join(ErrNotMigrated, err)
	}
	return errors.Join(ErrQueryFailed, err)
}

func isTable(name string) bool {
	return slices.Contains(Tables, name)
}
