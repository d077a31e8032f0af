package pipeline

import "errors"

var (
	ErrNotConfigured = errors.New("pipeline: fetcher and persister are required")
	ErrEmptyFetch    = errors.New("pipeline: source returned no data")
)
