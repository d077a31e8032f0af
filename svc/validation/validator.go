package validation

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/dmitrymomot/dataguard/pkg/logger"
	"github.com/dmitrymomot/dataguard/pkg/quality"
)

const (
	emptyBatchMessage  = "Empty or None batch provided"
	emptyRecordMessage = "Empty or None record provided"
)

// StructuredDetails is the outcome of validating one structured record.
// Error is set when validation could not run at all.
type StructuredDetails struct {
	quality.RecordDetails
	Error string `json:"error,omitempty"`
}

// Result is the latest stored outcome for one domain.
type Result struct {
	Domain      string             `json:"domain"`
	Kind        Kind               `json:"kind"`
	Passed      bool               `json:"passed"`
	Report      *quality.Report    `json:"report,omitempty"`
	Record      *StructuredDetails `json:"record,omitempty"`
	ValidatedAt time.Time          `json:"validated_at"`
}

// Summary tallies stored tabular results. Structured results are listed in
// Details but not counted.
type Summary struct {
	Total   int               `json:"total_validations"`
	Passed  int               `json:"passed"`
	Failed  int               `json:"failed"`
	Details map[string]Result `json:"details"`
}

// Validator maps domain names to schemas, runs the quality checks and keeps
// the latest result per domain. It is not safe for concurrent use; build one
// per caller.
type Validator struct {
	log       *slog.Logger
	threshold float64
	now       func() time.Time
	runChecks func(b *quality.Batch, opts ...quality.RunOption) quality.Report
	results   map[string]Result
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{
		log:       logger.Discard(),
		threshold: quality.DefaultMissingThreshold,
		now:       time.Now,
		runChecks: func(b *quality.Batch, opts ...quality.RunOption) quality.Report {
			return quality.NewChecker(b).RunAllChecks(opts...)
		},
		results: make(map[string]Result),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.log = v.log.With(logger.Component("validator"))
	return v
}

// ValidateTabular runs the full check battery over a batch for a tabular domain.
// It never fails: unknown domains, empty batches and checker panics all come
// back as failed reports with a description in Details.
func (v *Validator) ValidateTabular(ctx context.Context, domain string, b *quality.Batch) (report quality.Report) {
	log := v.log.With(logger.Domain(domain))
	log.InfoContext(ctx, "validating batch", logger.Records(b.RowCount()))

	d, ok := Lookup(domain)
	if !ok {
		log.ErrorContext(ctx, "unknown domain")
		return quality.FailedReport(fmt.Sprintf("%s: %q", ErrUnknownDomain, domain))
	}
	if d.Kind != KindTabular {
		log.ErrorContext(ctx, "domain is not tabular")
		return quality.FailedReport(fmt.Sprintf("%s: %q is %s", ErrWrongKind, domain, d.Kind))
	}
	if b.RowCount() == 0 {
		log.ErrorContext(ctx, "batch is empty")
		return quality.FailedReport(emptyBatchMessage)
	}

	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "checker failed", slog.Any("panic", r))
			report = quality.FailedReport(fmt.Sprint(r))
		}
	}()

	report = v.runChecks(b,
		quality.WithExpectedTypes(d.Schema),
		quality.WithMissingThreshold(v.threshold),
	)
	report.RecordsValidated = b.RowCount()

	v.results[domain] = Result{
		Domain:      domain,
		Kind:        KindTabular,
		Passed:      report.Passed,
		Report:      &report,
		ValidatedAt: v.now(),
	}

	if report.Passed {
		log.InfoContext(ctx, "batch validation passed", logger.Records(report.RecordsValidated))
	} else {
		log.ErrorContext(ctx, "batch validation failed",
			slog.Any("failed_checks", report.FailedChecks()),
			slog.Any("issues", report.Issues),
		)
	}
	return report
}

// ValidateStructured checks a single record against a structured domain's schema.
func (v *Validator) ValidateStructured(ctx context.Context, domain string, rec quality.Record) (passed bool, details StructuredDetails) {
	log := v.log.With(logger.Domain(domain))
	log.InfoContext(ctx, "validating record")

	d, ok := Lookup(domain)
	if !ok {
		log.ErrorContext(ctx, "unknown domain")
		return false, StructuredDetails{Error: fmt.Sprintf("%s: %q", ErrUnknownDomain, domain)}
	}
	if d.Kind != KindStructured {
		log.ErrorContext(ctx, "domain is not structured")
		return false, StructuredDetails{Error: fmt.Sprintf("%s: %q is %s", ErrWrongKind, domain, d.Kind)}
	}
	if len(rec) == 0 {
		log.ErrorContext(ctx, "record is empty")
		return false, StructuredDetails{Error: emptyRecordMessage}
	}

	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "record validation failed unexpectedly", slog.Any("panic", r))
			passed, details = false, StructuredDetails{Error: fmt.Sprint(r)}
		}
	}()

	passed, rd := quality.ValidateRecord(rec, d.Schema)
	details = StructuredDetails{RecordDetails: rd}

	v.results[domain] = Result{
		Domain:      domain,
		Kind:        KindStructured,
		Passed:      passed,
		Record:      &details,
		ValidatedAt: v.now(),
	}

	if passed {
		log.InfoContext(ctx, "record validation passed")
	} else {
		log.ErrorContext(ctx, "record validation failed", slog.Any("errors", rd.Errors))
	}
	return passed, details
}

// Input is one domain's payload for ValidateAll: a batch for tabular domains
// or a record for structured ones.
type Input struct {
	Batch  *quality.Batch
	Record quality.Record
}

// Tabular wraps a batch as an Input.
func Tabular(b *quality.Batch) Input { return Input{Batch: b} }

// Structured wraps a record as an Input.
func Structured(r quality.Record) Input { return Input{Record: r} }

// Outcome is one domain's entry in an AllResult.
type Outcome struct {
	Passed bool               `json:"passed"`
	Report *quality.Report    `json:"report,omitempty"`
	Record *StructuredDetails `json:"record,omitempty"`
}

// AllResult aggregates a ValidateAll call.
type AllResult struct {
	Timestamp     time.Time          `json:"timestamp"`
	Validations   map[string]Outcome `json:"validations"`
	OverallPassed bool               `json:"overall_passed"`
}

// Validate runs the structured or tabular validation the domain calls for.
// Unknown domains take the tabular path and fail there.
func (v *Validator) Validate(ctx context.Context, domain string, in Input) Outcome {
	if d, ok := Lookup(domain); ok && d.Kind == KindStructured {
		passed, details := v.ValidateStructured(ctx, domain, in.Record)
		return Outcome{Passed: passed, Record: &details}
	}
	report := v.ValidateTabular(ctx, domain, in.Batch)
	return Outcome{Passed: report.Passed, Report: &report}
}

// ValidateAll validates every supplied domain. OverallPassed is the AND of the
// supplied domains only; absent domains are not counted.
func (v *Validator) ValidateAll(ctx context.Context, inputs map[string]Input) AllResult {
	res := AllResult{
		Timestamp:     v.now(),
		Validations:   make(map[string]Outcome, len(inputs)),
		OverallPassed: true,
	}

	for _, domain := range slices.Sorted(maps.Keys(inputs)) {
		out := v.Validate(ctx, domain, inputs[domain])
		res.Validations[domain] = out
		res.OverallPassed = res.OverallPassed && out.Passed
	}

	status := "PASSED"
	if !res.OverallPassed {
		status = "FAILED"
	}
	v.log.InfoContext(ctx, "overall validation result", slog.String("status", status), slog.Int("domains", len(inputs)))
	return res
}

// Summary returns the stored results and the pass/fail tally of the tabular ones.
func (v *Validator) Summary() Summary {
	s := Summary{Details: maps.Clone(v.results)}
	for _, r := range v.results {
		if r.Kind != KindTabular {
			continue
		}
		s.Total++
		if r.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}

// ClearResults forgets every stored result.
func (v *Validator) ClearResults() {
	clear(v.results)
	v.log.Info("validation results cleared")
}
