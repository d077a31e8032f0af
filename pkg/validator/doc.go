// Package validator provides small declarative validation rules.
//
// A Rule pairs a boolean Check with the ValidationError reported when the
// check fails. Apply evaluates a list of rules and aggregates the failures
// into ValidationErrors, which satisfies the error interface so several
// field-level problems can be returned at once.
//
//	err := validator.Apply(
//	    validator.RequiredString("city", city),
//	    validator.InRange("missing_threshold", threshold, 0.0, 1.0),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    for field, msg := range verrs.Map() {
//	        // ...
//	    }
//	}
//
// Rules carry a Code (missing_field, type_mismatch, out_of_range, required)
// so callers can classify failures without parsing messages.
package validator
