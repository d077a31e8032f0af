package validation

import "github.com/dmitrymomot/dataguard/pkg/quality"

// SetRunChecks replaces the check runner so tests can simulate checker faults.
func SetRunChecks(v *Validator, fn func(*quality.Batch, ...quality.RunOption) quality.Report) {
	v.runChecks = fn
}
