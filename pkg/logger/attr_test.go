package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dataguard/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("batch", logger.Domain("posts"), logger.Records(2))
	require.Equal(t, "batch", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "domain", g[0].Key)
	assert.Equal(t, "records", g[1].Key)
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestDomainAttrs(t *testing.T) {
	tests := []struct {
		attr slog.Attr
		key  string
		want any
	}{
		{logger.Domain("weather"), "domain", "weather"},
		{logger.Component("pipeline"), "component", "pipeline"},
		{logger.RunID("r-1"), "run_id", "r-1"},
		{logger.RequestID("abc"), "request_id", "abc"},
		{logger.Records(7), "records", int64(7)},
		{logger.Check("duplicates"), "check", "duplicates"},
		{logger.Passed(false), "passed", false},
		{logger.Duration(time.Second), "duration", time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.key, tt.attr.Key)
			assert.Equal(t, tt.want, tt.attr.Value.Any())
		})
	}

	assert.True(t, logger.RunID("").Equal(slog.Attr{}))
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
}
