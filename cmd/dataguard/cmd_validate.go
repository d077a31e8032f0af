package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/dataguard/pkg/logger"
	"github.com/dmitrymomot/dataguard/svc/validation"
)

type validateOptions struct {
	domain    string
	file      string
	output    string
	threshold float64
}

type validateResult struct {
	Domain string `json:"domain"`
	validation.Outcome
}

func newValidateCmd() *cobra.Command {
	opts := &validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a local JSON or YAML payload",
		Long: `Validate a local payload against a registered domain.

With --domain the file holds that domain's payload: an array of objects for
tabular domains or a single object for structured ones. Without --domain the
file is an object keyed by domain name and every entry is validated.

Exits with status 1 when validation fails.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkOutput(opts.output); err != nil {
				return err
			}
			return runValidate(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.domain, "domain", "d", "", "domain to validate against (omit for a multi-domain file)")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "-", "payload file, - for stdin")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputJSON, "output format: json or yaml")
	cmd.Flags().Float64Var(&opts.threshold, "missing-threshold", 0.5, "largest tolerated fraction of missing values per column")
	return cmd
}

func runValidate(ctx context.Context, stdin io.Reader, stdout io.Writer, opts *validateOptions) error {
	data, err := readPayload(stdin, opts.file)
	if err != nil {
		return err
	}
	payload, err := decodePayload(data, opts.file)
	if err != nil {
		return err
	}

	v := validation.New(
		validation.WithLogger(logger.New(logger.WithOutput(os.Stderr), logger.WithLevel(logger.ParseLevel("warn")))),
		validation.WithMissingThreshold(opts.threshold),
	)

	var (
		result any
		passed bool
	)
	if opts.domain != "" {
		in, err := validation.FromValue(opts.domain, payload)
		if err != nil {
			return err
		}
		out := v.Validate(ctx, opts.domain, in)
		result, passed = validateResult{Domain: opts.domain, Outcome: out}, out.Passed
	} else {
		entries, ok := payload.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: without --domain the file must be an object keyed by domain", validation.ErrInvalidInput)
		}
		inputs := make(map[string]validation.Input, len(entries))
		for domain, raw := range entries {
			in, err := validation.FromValue(domain, raw)
			if err != nil && !errors.Is(err, validation.ErrUnknownDomain) {
				return fmt.Errorf("domain %q: %w", domain, err)
			}
			inputs[domain] = in
		}
		all := v.ValidateAll(ctx, inputs)
		result, passed = all, all.OverallPassed
	}

	if err := write(stdout, opts.output, result); err != nil {
		return err
	}
	if !passed {
		return errValidationFailed
	}
	return nil
}

func readPayload(stdin io.Reader, file string) ([]byte, error) {
	if file == "" || file == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(file)
}

// decodePayload reads YAML for .yaml/.yml files and JSON otherwise. JSON
// numbers keep their integer or float form.
func decodePayload(data []byte, file string) (any, error) {
	var v any
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("%w: %w", validation.ErrInvalidInput, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: %w", validation.ErrInvalidInput, err)
		}
	}
	return v, nil
}
