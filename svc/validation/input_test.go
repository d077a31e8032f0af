package validation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dataguard/pkg/quality"
	"github.com/dmitrymomot/dataguard/svc/validation"
)

func TestDecodeJSON(t *testing.T) {
	t.Run("tabular array", func(t *testing.T) {
		in, err := validation.DecodeJSON(validation.DomainPosts, []byte(`[
			{"post_id": 1, "user_id": 2, "title": "a", "body": "b c", "word_count": 2},
			{"post_id": 2, "user_id": 2, "title": "d", "body": "e", "word_count": 1}
		]`))
		require.NoError(t, err)
		require.NotNil(t, in.Batch)
		assert.Equal(t, 2, in.Batch.RowCount())

		col, ok := in.Batch.Column("post_id")
		require.True(t, ok)
		assert.Equal(t, quality.TypeInteger, col.Type)

		report := validation.New().ValidateTabular(context.Background(), validation.DomainPosts, in.Batch)
		assert.True(t, report.Passed, report.Issues)
	})

	t.Run("structured object", func(t *testing.T) {
		in, err := validation.DecodeJSON(validation.DomainWeather, []byte(`{
			"city": "London", "temperature": 11.2, "humidity": 60,
			"pressure": 1012, "timestamp": "2026-03-01T10:00:00Z", "source": "owm"
		}`))
		require.NoError(t, err)
		ok, details := validation.New().ValidateStructured(context.Background(), validation.DomainWeather, in.Record)
		assert.True(t, ok, details.Errors)
	})

	t.Run("shape mismatch", func(t *testing.T) {
		_, err := validation.DecodeJSON(validation.DomainPosts, []byte(`{"post_id": 1}`))
		assert.ErrorIs(t, err, validation.ErrWrongKind)

		_, err = validation.DecodeJSON(validation.DomainWeather, []byte(`[]`))
		assert.ErrorIs(t, err, validation.ErrWrongKind)

		_, err = validation.DecodeJSON(validation.DomainPosts, []byte(`[1, 2]`))
		assert.ErrorIs(t, err, validation.ErrInvalidInput)
	})

	t.Run("null payload fails as empty input", func(t *testing.T) {
		posts, err := validation.DecodeJSON(validation.DomainPosts, []byte(`null`))
		require.NoError(t, err)
		assert.Nil(t, posts.Batch)

		weather, err := validation.FromValue(validation.DomainWeather, nil)
		require.NoError(t, err)
		assert.Nil(t, weather.Record)

		res := validation.New().ValidateAll(context.Background(), map[string]validation.Input{
			validation.DomainPosts:   posts,
			validation.DomainWeather: weather,
		})
		assert.False(t, res.OverallPassed)
		assert.False(t, res.Validations[validation.DomainPosts].Passed)
		assert.Equal(t, "Empty or None batch provided", res.Validations[validation.DomainPosts].Report.Details)
		assert.False(t, res.Validations[validation.DomainWeather].Passed)
		assert.Equal(t, "Empty or None record provided", res.Validations[validation.DomainWeather].Record.Error)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := validation.DecodeJSON(validation.DomainPosts, []byte(`[{`))
		assert.ErrorIs(t, err, validation.ErrInvalidInput)
	})

	t.Run("unknown domain", func(t *testing.T) {
		_, err := validation.DecodeJSON("prices", []byte(`[]`))
		assert.ErrorIs(t, err, validation.ErrUnknownDomain)
	})
}
