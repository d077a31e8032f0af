package quality

import "errors"

var (
	// ErrInvalidColumn is returned when a column has no name or is declared twice.
	ErrInvalidColumn = errors.New("invalid column")
	// ErrRowShape is returned when a row does not carry one value per column.
	ErrRowShape = errors.New("row does not match batch columns")
	// ErrUnknownType is returned when a type tag name cannot be resolved.
	ErrUnknownType = errors.New("unknown type tag")
)
