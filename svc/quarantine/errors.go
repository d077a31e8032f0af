package quarantine

import "errors"

var (
	ErrInvalidEntry = errors.New("quarantine: invalid entry")
	ErrCorruptEntry = errors.New("quarantine: corrupt entry")
)
