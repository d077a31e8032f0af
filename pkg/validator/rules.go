package validator

import (
	"fmt"
	"strings"
)

// Rule codes.
const (
	CodeMissingField = "missing_field"
	CodeRequired     = "required"
	CodeTypeMismatch = "type_mismatch"
	CodeOutOfRange   = "out_of_range"
)

// Present fails when a field is absent from its record.
func Present(field string, present bool) Rule {
	return Rule{
		Check: func() bool { return present },
		Error: ValidationError{
			Field:   field,
			Code:    CodeMissingField,
			Message: "missing field",
		},
	}
}

// Match fails when ok is false, reporting message under code.
func Match(field string, ok bool, code, message string) Rule {
	return Rule{
		Check: func() bool { return ok },
		Error: ValidationError{
			Field:   field,
			Code:    code,
			Message: message,
		},
	}
}

// RequiredString validates that a string is not empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:   field,
			Code:    CodeRequired,
			Message: "field is required",
		},
	}
}

// MinNum validates that value >= min.
func MinNum[T Numeric](field string, value, min T) Rule {
	return Rule{
		Check: func() bool {
			return value >= min
		},
		Error: ValidationError{
			Field:   field,
			Code:    CodeOutOfRange,
			Message: fmt.Sprintf("must be at least %v", min),
		},
	}
}

// InRange validates that min <= value <= max.
func InRange[T Numeric](field string, value, min, max T) Rule {
	return Rule{
		Check: func() bool {
			return value >= min && value <= max
		},
		Error: ValidationError{
			Field:   field,
			Code:    CodeOutOfRange,
			Message: fmt.Sprintf("must be between %v and %v", min, max),
		},
	}
}
