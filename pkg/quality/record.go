package quality

import (
	"fmt"

	"github.com/dmitrymomot/dataguard/pkg/validator"
)

// RecordDetails describes the outcome of validating one structured record.
type RecordDetails struct {
	// Errors maps a field to its failure message; nil when the record is valid.
	Errors          map[string]string `json:"errors" yaml:"errors"`
	FieldsValidated int               `json:"fields_validated" yaml:"fields_validated"`
	FieldsCheckedOK int               `json:"fields_checked_ok" yaml:"fields_checked_ok"`
}

// ValidateRecord checks a structured record against a schema.
// A field absent from the record fails as "missing field"; a present field
// whose runtime tag is not accepted fails as a type mismatch.
// It has no side effects.
func ValidateRecord(record Record, schema Schema) (bool, RecordDetails) {
	rules := make([]validator.Rule, 0, len(schema))
	for _, field := range schema.Fields() {
		value, present := record[field]
		if !present {
			rules = append(rules, validator.Present(field, false))
			continue
		}
		accepted := schema[field]
		actual := TypeOf(value)
		rules = append(rules, validator.Match(
			field,
			accepted.Accepts(actual),
			validator.CodeTypeMismatch,
			fmt.Sprintf("type mismatch: expected %s, got %s", accepted, actual),
		))
	}

	details := RecordDetails{FieldsValidated: len(schema)}
	verrs := validator.ExtractValidationErrors(validator.Apply(rules...))
	if !verrs.IsEmpty() {
		details.Errors = verrs.Map()
	}
	for _, field := range schema.Fields() {
		if !verrs.Has(field) {
			details.FieldsCheckedOK++
		}
	}

	return len(details.Errors) == 0, details
}
