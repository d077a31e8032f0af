// Package pg connects to PostgreSQL through a pgx/v5 pool.
//
// Connect retries with a linearly growing interval, Healthcheck returns a
// readiness probe, OpenDB adapts the pool to database/sql and RunGoose applies
// embedded goose migrations for any goose dialect. IsUndefinedTableError
// spots queries that ran before migrations.
package pg
