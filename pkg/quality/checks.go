package quality

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

const noDataMessage = "No data provided"

// DefaultMissingThreshold is the missing-value fraction a column may reach before failing.
const DefaultMissingThreshold = 0.5

// CheckEmpty passes when the batch has at least one row.
func CheckEmpty(b *Batch) CheckResult {
	if b == nil {
		return CheckResult{
			Passed:  false,
			Message: noDataMessage,
			Details: map[string]any{"row_count": 0},
		}
	}

	rows := b.RowCount()
	msg := "Dataset is not empty"
	if rows == 0 {
		msg = "Dataset is empty"
	}
	return CheckResult{
		Passed:  rows > 0,
		Message: msg,
		Details: map[string]any{"row_count": rows},
	}
}

// CheckMissingValues fails when any column's fraction of missing entries
// is strictly greater than threshold. A fraction equal to threshold passes.
func CheckMissingValues(b *Batch, threshold float64) CheckResult {
	if b == nil {
		return CheckResult{Passed: false, Message: noDataMessage}
	}

	offending := make(map[string]float64)
	rows := b.RowCount()
	if rows > 0 {
		for j, c := range b.columns {
			missing := 0
			for _, r := range b.rows {
				if IsMissing(r[j]) {
					missing++
				}
			}
			if frac := float64(missing) / float64(rows); frac > threshold {
				offending[c.Name] = frac
			}
		}
	}

	names := make([]string, 0, len(offending))
	for name := range offending {
		names = append(names, name)
	}
	slices.Sort(names)

	return CheckResult{
		Passed:  len(offending) == 0,
		Message: fmt.Sprintf("Columns with more than %s%% missing values: [%s]", strconv.FormatFloat(threshold*100, 'f', -1, 64), strings.Join(names, ", ")),
		Details: map[string]any{
			"columns_with_issues": offending,
			"threshold":           threshold,
		},
	}
}

// CheckDuplicates counts rows equal in every column to an earlier row.
// The batch is left as is.
func CheckDuplicates(b *Batch) CheckResult {
	if b == nil {
		return CheckResult{Passed: false, Message: noDataMessage}
	}

	seen := make(map[string]struct{}, len(b.rows))
	duplicates := 0
	for _, r := range b.rows {
		key := rowKey(r)
		if _, ok := seen[key]; ok {
			duplicates++
			continue
		}
		seen[key] = struct{}{}
	}

	return CheckResult{
		Passed:  duplicates == 0,
		Message: fmt.Sprintf("Number of duplicate rows found: %d", duplicates),
		Details: map[string]any{"duplicate_rows": duplicates},
	}
}

// CheckTypes compares each expected column's declared tag with the tags it accepts.
// Columns absent from the batch are reported as not found.
func CheckTypes(b *Batch, expected Schema) CheckResult {
	if b == nil {
		return CheckResult{Passed: false, Message: noDataMessage}
	}

	mismatches := make(map[string]string)
	for _, name := range expected.Fields() {
		accepted := expected[name]
		col, ok := b.Column(name)
		switch {
		case !ok:
			mismatches[name] = "column not found"
		case !accepted.Accepts(col.Type):
			mismatches[name] = fmt.Sprintf("expected %s, found %s", accepted, col.Type)
		}
	}

	return CheckResult{
		Passed:  len(mismatches) == 0,
		Message: fmt.Sprintf("Data type mismatches found: %d", len(mismatches)),
		Details: map[string]any{"type_mismatches": mismatches},
	}
}

// rowKey renders a row so that two rows share a key only if every entry is
// equal in kind and value. Missing entries compare equal to each other.
func rowKey(r Row) string {
	var sb strings.Builder
	for _, v := range r {
		writeValueKey(&sb, v)
		sb.WriteByte(0x1f)
	}
	return sb.String()
}

func writeValueKey(sb *strings.Builder, v any) {
	if IsMissing(v) {
		sb.WriteString("~")
		return
	}
	switch val := normalizeValue(v).(type) {
	case string:
		sb.WriteString("s:")
		sb.WriteString(strconv.Quote(val))
	case bool:
		sb.WriteString("b:")
		sb.WriteString(strconv.FormatBool(val))
	case int64:
		sb.WriteString("i:")
		sb.WriteString(strconv.FormatInt(val, 10))
	case float64:
		sb.WriteString("f:")
		sb.WriteString(strconv.FormatFloat(val, 'g', -1, 64))
	case time.Time:
		sb.WriteString("t:")
		sb.WriteString(val.UTC().Format(time.RFC3339Nano))
	default:
		sb.WriteString(fmt.Sprintf("x:%T:%v", val, val))
	}
}
