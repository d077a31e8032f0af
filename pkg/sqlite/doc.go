// Package sqlite opens SQLite databases through github.com/mattn/go-sqlite3.
// It backs the store for local runs and tests when no PostgreSQL URL is set.
package sqlite
