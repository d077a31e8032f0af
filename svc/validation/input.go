package validation

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dmitrymomot/dataguard/pkg/quality"
)

// DecodeJSON decodes a domain payload: a JSON array of objects for tabular
// domains or a single object for structured ones. Numbers keep their integer
// or float form.
func DecodeJSON(domain string, data []byte) (Input, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return Input{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return FromValue(domain, v)
}

// FromValue converts a generically decoded payload (from JSON or YAML) into an
// Input for the domain. A null payload yields an empty Input, which fails
// validation as empty input.
func FromValue(domain string, v any) (Input, error) {
	d, ok := Lookup(domain)
	if !ok {
		return Input{}, fmt.Errorf("%w: %q", ErrUnknownDomain, domain)
	}
	if v == nil {
		return Input{}, nil
	}

	switch d.Kind {
	case KindStructured:
		rec, ok := asRecord(v)
		if !ok {
			return Input{}, fmt.Errorf("%w: %s expects an object", ErrWrongKind, domain)
		}
		return Structured(rec), nil
	default:
		items, ok := v.([]any)
		if !ok {
			return Input{}, fmt.Errorf("%w: %s expects an array of objects", ErrWrongKind, domain)
		}
		records := make([]quality.Record, 0, len(items))
		for i, item := range items {
			rec, ok := asRecord(item)
			if !ok {
				return Input{}, fmt.Errorf("%w: item %d is not an object", ErrInvalidInput, i)
			}
			records = append(records, rec)
		}
		b, err := quality.BatchFromRecords(records)
		if err != nil {
			return Input{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return Tabular(b), nil
	}
}

func asRecord(v any) (quality.Record, bool) {
	switch m := v.(type) {
	case map[string]any:
		return quality.Record(m), true
	case quality.Record:
		return m, true
	default:
		return nil, false
	}
}
