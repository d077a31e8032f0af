// Package quality implements the rule checks applied to fetched data before it
// is persisted.
//
// Tabular data is held in a Batch: ordered rows over a fixed set of columns,
// each column carrying a declared Type tag. A Checker bound to a batch runs
// four checks:
//
//   - empty_dataset   passes when the batch has rows
//   - missing_values  fails when a column's missing fraction exceeds a threshold
//   - duplicates      fails when a row repeats an earlier row
//   - data_types      fails when a column is absent or its tag is not accepted
//
// RunAllChecks combines them into a Report whose verdict is the logical AND of
// every result. Failing checks append their message to the checker's
// IssueLog, which only ResetIssues clears.
//
// Single structured records are validated with ValidateRecord, which is
// independent of any checker state.
//
//	batch, err := quality.BatchFromRecords(records)
//	if err != nil {
//	    return err
//	}
//	report := quality.NewChecker(batch).RunAllChecks(
//	    quality.WithExpectedTypes(quality.Schema{
//	        "symbol":        quality.Is(quality.TypeString),
//	        "current_price": quality.OneOf(quality.TypeFloat, quality.TypeInteger),
//	    }),
//	)
//	if !report.Passed {
//	    // report.Issues, report.Results
//	}
//
// The check functions are also exported as plain functions (CheckEmpty,
// CheckMissingValues, ...) for callers that do not need the issue log.
package quality
