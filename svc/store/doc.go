// Package store persists validated batches and per-API run logs.
//
// Store works over database/sql with either the pgx stdlib driver (postgres)
// or go-sqlite3. The schema ships as embedded goose migrations, one set per
// dialect. Cryptocurrency rows are upserted by symbol and posts by post_id.
package store
