package quality

import (
	"slices"
)

// Names of the checks as they appear in Report.Results.
const (
	CheckNameEmpty     = "empty_dataset"
	CheckNameMissing   = "missing_values"
	CheckNameDuplicate = "duplicates"
	CheckNameTypes     = "data_types"
)

// CheckResult is the outcome of a single rule.
type CheckResult struct {
	Passed  bool           `json:"passed" yaml:"passed"`
	Message string         `json:"message" yaml:"message"`
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
}

// Report aggregates the results of one check run over a batch.
// Passed is true only if every result in Results passed.
type Report struct {
	Passed           bool                   `json:"validation_passed" yaml:"validation_passed"`
	Issues           []string               `json:"issues_found" yaml:"issues_found"`
	Results          map[string]CheckResult `json:"detailed_results" yaml:"detailed_results"`
	RecordsValidated int                    `json:"records_validated" yaml:"records_validated"`
	// Details describes why a report was produced without running the checks.
	Details string `json:"details,omitempty" yaml:"details,omitempty"`
}

// NewReport builds a report from check results, deriving Passed from them.
func NewReport(results map[string]CheckResult, issues []string) Report {
	passed := true
	for _, r := range results {
		passed = passed && r.Passed
	}
	if issues == nil {
		issues = []string{}
	}
	return Report{
		Passed:  passed,
		Issues:  issues,
		Results: results,
	}
}

// FailedReport is a synthetic failed report for input that never reached the checks.
func FailedReport(details string) Report {
	return Report{
		Passed:  false,
		Issues:  []string{details},
		Results: map[string]CheckResult{},
		Details: details,
	}
}

// FailedChecks returns the names of failed results in sorted order.
func (r Report) FailedChecks() []string {
	var names []string
	for name, res := range r.Results {
		if !res.Passed {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// IssueLog accumulates the messages of failing checks.
// It is only cleared by Reset.
type IssueLog struct {
	entries []string
}

// Record appends the message of a failing result and returns the result unchanged.
func (l *IssueLog) Record(r CheckResult) CheckResult {
	if !r.Passed {
		l.entries = append(l.entries, r.Message)
	}
	return r
}

// Entries returns a copy of the accumulated messages.
func (l *IssueLog) Entries() []string {
	out := slices.Clone(l.entries)
	if out == nil {
		out = []string{}
	}
	return out
}

// Len returns the number of accumulated messages.
func (l *IssueLog) Len() int {
	return len(l.entries)
}

// Reset clears the log.
func (l *IssueLog) Reset() {
	l.entries = nil
}
