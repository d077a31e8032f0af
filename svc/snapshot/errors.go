package snapshot

import "errors"

var (
	ErrNotFound      = errors.New("snapshot: no snapshot published yet")
	ErrPublishFailed = errors.New("snapshot: publish failed")
	ErrReadFailed    = errors.New("snapshot: read failed")
)
