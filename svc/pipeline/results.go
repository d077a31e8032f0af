package pipeline

import "time"

// Outcome is what happened to one API during a run.
type Outcome struct {
	Domain      string `json:"domain"`
	API         string `json:"api"`
	Fetched     int    `json:"records_fetched"`
	Validated   int    `json:"records_validated"`
	Stored      int    `json:"records_stored"`
	Passed      bool   `json:"validation_passed"`
	ErrorsFound int    `json:"errors_found"`
	Quarantined string `json:"quarantined,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Results are the counters of one pipeline run.
type Results struct {
	RunID                 string             `json:"run_id"`
	StartedAt             time.Time          `json:"started_at"`
	FinishedAt            time.Time          `json:"finished_at"`
	TotalAPIs             int                `json:"total_apis"`
	SuccessfulFetches     int                `json:"successful_fetches"`
	SuccessfulValidations int                `json:"successful_validations"`
	SuccessfulStores      int                `json:"successful_stores"`
	TotalRecordsFetched   int                `json:"total_records_fetched"`
	TotalRecordsStored    int                `json:"total_records_stored"`
	Outcomes              map[string]Outcome `json:"outcomes"`
}

// Duration is the wall time of the run.
func (r Results) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// OverallPassed is true when something was fetched and every fetched source validated.
func (r Results) OverallPassed() bool {
	return r.SuccessfulFetches > 0 && r.SuccessfulValidations == r.SuccessfulFetches
}

// Counters flattens the numeric results for reporting.
func (r Results) Counters() map[string]int {
	return map[string]int{
		"total_apis":             r.TotalAPIs,
		"successful_fetches":     r.SuccessfulFetches,
		"successful_validations": r.SuccessfulValidations,
		"successful_stores":      r.SuccessfulStores,
		"total_records_fetched":  r.TotalRecordsFetched,
		"total_records_stored":   r.TotalRecordsStored,
	}
}
