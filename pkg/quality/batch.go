package quality

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"time"
)

// Column is a named column with its declared type tag.
type Column struct {
	Name string `json:"name" yaml:"name"`
	Type Type   `json:"type" yaml:"type"`
}

// Row holds one value per batch column, in column order. Nil is a missing entry.
type Row []any

// Record is a single structured record, e.g. one weather reading.
type Record map[string]any

// Batch is an ordered, table-shaped set of rows sharing one column set.
// Column tags are declared when the batch is built and never re-inferred.
// A Batch is not modified by any check.
type Batch struct {
	columns []Column
	index   map[string]int
	rows    []Row
}

// NewBatch builds a batch from declared columns and rows.
// Every row must carry exactly one value per column.
func NewBatch(columns []Column, rows ...Row) (*Batch, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: column %d has no name", ErrInvalidColumn, i)
		}
		if _, dup := index[c.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrInvalidColumn, c.Name)
		}
		index[c.Name] = i
	}
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrRowShape, i, len(r), len(columns))
		}
	}
	return &Batch{
		columns: slices.Clone(columns),
		index:   index,
		rows:    rows,
	}, nil
}

// BatchFromRecords builds a batch from decoded records.
// The column set is the union of record keys in first-seen order (keys of a
// single record are taken sorted). Absent keys become missing entries.
// Each column is declared with the tag inferred from its values: integer and
// float mixes widen to float, other mixes are TypeMixed and columns with no
// present value are TypeNull.
func BatchFromRecords(records []Record) (*Batch, error) {
	var names []string
	seen := make(map[string]bool)
	for _, rec := range records {
		keys := make([]string, 0, len(rec))
		for k := range rec {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
	}

	rows := make([]Row, len(records))
	for i, rec := range records {
		row := make(Row, len(names))
		for j, name := range names {
			row[j] = normalizeValue(rec[name])
		}
		rows[i] = row
	}

	columns := make([]Column, len(names))
	for j, name := range names {
		t := inferColumnType(rows, j)
		if t == TypeFloat {
			widenToFloat(rows, j)
		}
		columns[j] = Column{Name: name, Type: t}
	}

	return NewBatch(columns, rows...)
}

// RowCount returns the number of rows. A nil batch has none.
func (b *Batch) RowCount() int {
	if b == nil {
		return 0
	}
	return len(b.rows)
}

// ColumnCount returns the number of declared columns.
func (b *Batch) ColumnCount() int {
	if b == nil {
		return 0
	}
	return len(b.columns)
}

// Columns returns a copy of the declared columns.
func (b *Batch) Columns() []Column {
	if b == nil {
		return nil
	}
	return slices.Clone(b.columns)
}

// Column looks up a declared column by name.
func (b *Batch) Column(name string) (Column, bool) {
	if b == nil {
		return Column{}, false
	}
	i, ok := b.index[name]
	if !ok {
		return Column{}, false
	}
	return b.columns[i], true
}

// Value returns the entry at the given row and column.
func (b *Batch) Value(row int, column string) (any, bool) {
	if b == nil || row < 0 || row >= len(b.rows) {
		return nil, false
	}
	i, ok := b.index[column]
	if !ok {
		return nil, false
	}
	return b.rows[row][i], true
}

// Records returns the rows as name-keyed records.
func (b *Batch) Records() []Record {
	if b == nil {
		return nil
	}
	out := make([]Record, len(b.rows))
	for i, row := range b.rows {
		rec := make(Record, len(b.columns))
		for j, c := range b.columns {
			rec[c.Name] = row[j]
		}
		out[i] = rec
	}
	return out
}

type batchJSON struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// MarshalJSON encodes the batch with its declared columns.
func (b *Batch) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}
	rows := make([]Row, len(b.rows))
	for i, r := range b.rows {
		rows[i] = jsonSafeRow(r)
	}
	return json.Marshal(batchJSON{Columns: b.columns, Rows: rows})
}

// UnmarshalJSON decodes the form written by MarshalJSON. Declared column
// tags are kept; float columns are widened and datetime strings parsed so the
// decoded batch checks the same as the original.
func (b *Batch) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw batchJSON
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	for _, r := range raw.Rows {
		for j, v := range r {
			r[j] = normalizeValue(v)
			if j >= len(raw.Columns) {
				continue
			}
			if s, ok := r[j].(string); ok && raw.Columns[j].Type == TypeDateTime {
				if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
					r[j] = t
				}
			}
		}
	}
	decoded, err := NewBatch(raw.Columns, raw.Rows...)
	if err != nil {
		return err
	}
	for j, c := range raw.Columns {
		if c.Type == TypeFloat {
			widenToFloat(raw.Rows, j)
		}
	}
	*b = *decoded
	return nil
}

// jsonSafeRow replaces non-finite floats, which encoding/json rejects, with nil.
func jsonSafeRow(r Row) Row {
	out := r
	copied := false
	for i, v := range r {
		f, ok := v.(float64)
		if !ok || (!math.IsNaN(f) && !math.IsInf(f, 0)) {
			continue
		}
		if !copied {
			out = slices.Clone(r)
			copied = true
		}
		out[i] = nil
	}
	return out
}

func inferColumnType(rows []Row, col int) Type {
	kinds := make(map[Type]bool)
	for _, r := range rows {
		if t := TypeOf(r[col]); t != TypeNull {
			kinds[t] = true
		}
	}
	switch {
	case len(kinds) == 0:
		return TypeNull
	case len(kinds) == 1:
		for t := range kinds {
			return t
		}
	case len(kinds) == 2 && kinds[TypeInteger] && kinds[TypeFloat]:
		return TypeFloat
	}
	return TypeMixed
}

func widenToFloat(rows []Row, col int) {
	for _, r := range rows {
		if v, ok := r[col].(int64); ok {
			r[col] = float64(v)
		}
	}
}

// normalizeValue folds numeric kinds into int64/float64 so equal values
// compare equal regardless of how they were decoded.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case uint:
		return int64(val)
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case uint64:
		if val > math.MaxInt64 {
			return float64(val)
		}
		return int64(val)
	case float32:
		return float64(val)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case *time.Time:
		if val == nil {
			return nil
		}
		return *val
	default:
		return v
	}
}
