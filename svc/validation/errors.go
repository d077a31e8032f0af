package validation

import "errors"

var (
	ErrUnknownDomain = errors.New("unknown domain")
	ErrWrongKind     = errors.New("domain does not accept this input shape")
	ErrInvalidInput  = errors.New("invalid input payload")
)
