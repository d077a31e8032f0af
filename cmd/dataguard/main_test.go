package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintError(t *testing.T) {
	t.Run("validation failure prints nothing", func(t *testing.T) {
		var buf bytes.Buffer
		printError(&buf, fmt.Errorf("validate: %w", errValidationFailed))
		assert.Empty(t, buf.String())
	})

	t.Run("plain error", func(t *testing.T) {
		var buf bytes.Buffer
		printError(&buf, errors.New("connection refused"))
		assert.Equal(t, "error: connection refused\n", buf.String())
	})

	t.Run("configuration errors per setting", func(t *testing.T) {
		cfg := appConfig{Env: " ", Service: "dataguard", SnapshotHistory: 20}
		cfg.Pipeline.Schedule = "@every 1h"
		cfg.Pipeline.MissingThreshold = 2
		cfg.Pipeline.CryptoLimit = 20
		cfg.Pipeline.PostsLimit = 50

		var buf bytes.Buffer
		printError(&buf, errors.Join(errors.New("invalid config"), cfg.Validate()))
		assert.Equal(t, "error: invalid configuration\n"+
			"  APP_ENV: field is required\n"+
			"  PIPELINE_MISSING_THRESHOLD: must be between 0 and 1\n", buf.String())
	})
}
