package store

import "errors"

var (
	ErrNilDB              = errors.New("store: nil database")
	ErrUnsupportedDialect = errors.New("store: unsupported dialect")
	ErrUnavailable        = errors.New("store: database unavailable")
	ErrQueryFailed        = errors.New("store: query failed")
	ErrWriteFailed        = errors.New("store: write failed")
	ErrUnknownTable       = errors.New("store: unknown table")
	ErrNotMigrated        = errors.New("store: schema is not migrated")
)
