package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

func checkOutput(format string) error {
	switch format {
	case outputJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q, want json or yaml", format)
}

// write encodes v as JSON or YAML. YAML goes through JSON first so both
// formats use the same field names.
func write(w io.Writer, format string, v any) error {
	if format == outputYAML {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic any
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(generic)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
