package quality

// Checker runs the tabular checks over one bound batch and keeps the issue
// log of every failing check called on it. It is meant for use by a single
// goroutine; build one per batch.
type Checker struct {
	batch *Batch
	log   IssueLog
}

// NewChecker binds a checker to b. A nil batch is allowed; every check on it fails.
func NewChecker(b *Batch) *Checker {
	return &Checker{batch: b}
}

// Batch returns the bound batch.
func (c *Checker) Batch() *Batch {
	return c.batch
}

// CheckEmpty runs CheckEmpty on the bound batch and logs a failure.
func (c *Checker) CheckEmpty() CheckResult {
	return c.log.Record(CheckEmpty(c.batch))
}

// CheckMissingValues runs CheckMissingValues on the bound batch and logs a failure.
func (c *Checker) CheckMissingValues(threshold float64) CheckResult {
	return c.log.Record(CheckMissingValues(c.batch, threshold))
}

// CheckDuplicates runs CheckDuplicates on the bound batch and logs a failure.
func (c *Checker) CheckDuplicates() CheckResult {
	return c.log.Record(CheckDuplicates(c.batch))
}

// CheckTypes runs CheckTypes on the bound batch and logs a failure.
func (c *Checker) CheckTypes(expected Schema) CheckResult {
	return c.log.Record(CheckTypes(c.batch, expected))
}

// ValidateRecord validates a structured record. The checker's issue log is
// neither read nor written.
func (c *Checker) ValidateRecord(record Record, schema Schema) (bool, RecordDetails) {
	return ValidateRecord(record, schema)
}

// Issues returns the messages of every failing check run so far.
func (c *Checker) Issues() []string {
	return c.log.Entries()
}

// ResetIssues clears the issue log.
func (c *Checker) ResetIssues() {
	c.log.Reset()
}

// RunOption configures RunAllChecks.
type RunOption func(*runConfig)

type runConfig struct {
	expected  Schema
	threshold float64
}

// WithExpectedTypes enables the type check against schema.
// A nil or empty schema leaves type checking off.
func WithExpectedTypes(schema Schema) RunOption {
	return func(c *runConfig) { c.expected = schema }
}

// WithMissingThreshold overrides DefaultMissingThreshold.
func WithMissingThreshold(threshold float64) RunOption {
	return func(c *runConfig) { c.threshold = threshold }
}

// RunAllChecks runs the empty, missing-value and duplicate checks, plus the
// type check when expected types were supplied, and reports the combined verdict.
// The report's Issues is a snapshot of the checker's issue log.
func (c *Checker) RunAllChecks(opts ...RunOption) Report {
	cfg := runConfig{threshold: DefaultMissingThreshold}
	for _, opt := range opts {
		opt(&cfg)
	}

	results := make(map[string]CheckResult, 4)
	results[CheckNameEmpty] = c.CheckEmpty()
	results[CheckNameMissing] = c.CheckMissingValues(cfg.threshold)
	results[CheckNameDuplicate] = c.CheckDuplicates()
	if len(cfg.expected) > 0 {
		results[CheckNameTypes] = c.CheckTypes(cfg.expected)
	}

	return NewReport(results, c.Issues())
}
