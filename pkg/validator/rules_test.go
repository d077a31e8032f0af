package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/dataguard/pkg/validator"
)

func TestRules(t *testing.T) {
	tests := []struct {
		name string
		rule validator.Rule
		pass bool
		code string
	}{
		{"present", validator.Present("a", true), true, validator.CodeMissingField},
		{"absent", validator.Present("a", false), false, validator.CodeMissingField},
		{"match ok", validator.Match("a", true, validator.CodeTypeMismatch, "x"), true, validator.CodeTypeMismatch},
		{"match fail", validator.Match("a", false, validator.CodeTypeMismatch, "x"), false, validator.CodeTypeMismatch},
		{"required string", validator.RequiredString("a", "v"), true, validator.CodeRequired},
		{"blank string", validator.RequiredString("a", " \t"), false, validator.CodeRequired},
		{"min equal", validator.MinNum("a", 5, 5), true, validator.CodeOutOfRange},
		{"min below", validator.MinNum("a", 4.9, 5), false, validator.CodeOutOfRange},
		{"range lower bound", validator.InRange("a", 0.0, 0, 1), true, validator.CodeOutOfRange},
		{"range upper bound", validator.InRange("a", 1.0, 0, 1), true, validator.CodeOutOfRange},
		{"range above", validator.InRange("a", 1.5, 0, 1), false, validator.CodeOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.pass, tt.rule.Check())
			assert.Equal(t, tt.code, tt.rule.Error.Code)
			assert.Equal(t, "a", tt.rule.Error.Field)
		})
	}
}

func TestInRange_Message(t *testing.T) {
	r := validator.InRange("missing_threshold", 2.0, 0, 1)
	assert.Equal(t, "must be between 0 and 1", r.Error.Message)
}
