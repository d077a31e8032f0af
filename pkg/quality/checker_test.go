package quality_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dataguard/pkg/quality"
)

var postsSchema = quality.Schema{
	"post_id":    quality.Is(quality.TypeInteger),
	"title":      quality.Is(quality.TypeString),
	"word_count": quality.Is(quality.TypeInteger),
}

func fakePosts(t *testing.T, seed int64, n int) *quality.Batch {
	t.Helper()
	faker := gofakeit.New(seed)
	records := make([]quality.Record, n)
	for i := range records {
		records[i] = quality.Record{
			"post_id":    int64(i + 1),
			"title":      faker.Sentence(4),
			"word_count": int64(faker.Number(1, 500)),
		}
		if faker.Bool() {
			records[i]["title"] = nil
		}
	}
	b, err := quality.BatchFromRecords(records)
	require.NoError(t, err)
	return b
}

func TestChecker_RunAllChecks(t *testing.T) {
	t.Run("clean batch passes", func(t *testing.T) {
		b := mustBatch(t, []quality.Column{
			{Name: "post_id", Type: quality.TypeInteger},
			{Name: "title", Type: quality.TypeString},
			{Name: "word_count", Type: quality.TypeInteger},
		},
			quality.Row{int64(1), "first", int64(10)},
			quality.Row{int64(2), "second", int64(15)},
		)

		report := quality.NewChecker(b).RunAllChecks(quality.WithExpectedTypes(postsSchema))
		assert.True(t, report.Passed)
		assert.Empty(t, report.Issues)
		assert.Len(t, report.Results, 4)
		for name, res := range report.Results {
			assert.True(t, res.Passed, name)
		}
	})

	t.Run("empty batch fails overall", func(t *testing.T) {
		report := quality.NewChecker(mustBatch(t, nil)).RunAllChecks()
		assert.False(t, report.Passed)
		assert.False(t, report.Results[quality.CheckNameEmpty].Passed)
		assert.True(t, report.Results[quality.CheckNameMissing].Passed)
		assert.True(t, report.Results[quality.CheckNameDuplicate].Passed)
		assert.NotContains(t, report.Results, quality.CheckNameTypes)
		assert.Equal(t, []string{"Dataset is empty"}, report.Issues)
	})

	t.Run("type check skipped without expected types", func(t *testing.T) {
		b := mustBatch(t, []quality.Column{{Name: "post_id", Type: quality.TypeString}}, quality.Row{"not a number"})

		report := quality.NewChecker(b).RunAllChecks()
		assert.True(t, report.Passed)
		assert.NotContains(t, report.Results, quality.CheckNameTypes)

		report = quality.NewChecker(b).RunAllChecks(quality.WithExpectedTypes(quality.Schema{}))
		assert.True(t, report.Passed)
		assert.NotContains(t, report.Results, quality.CheckNameTypes)
	})

	t.Run("any failing check fails the verdict", func(t *testing.T) {
		cols := []quality.Column{{Name: "post_id", Type: quality.TypeInteger}}
		cases := map[string]*quality.Batch{
			quality.CheckNameMissing:   mustBatch(t, cols, quality.Row{nil}, quality.Row{int64(1)}),
			quality.CheckNameDuplicate: mustBatch(t, cols, quality.Row{int64(1)}, quality.Row{int64(1)}),
		}
		for check, b := range cases {
			report := quality.NewChecker(b).RunAllChecks(quality.WithMissingThreshold(0))
			assert.False(t, report.Passed, check)
			assert.Equal(t, []string{check}, report.FailedChecks())
		}

		mismatched := mustBatch(t, []quality.Column{{Name: "post_id", Type: quality.TypeFloat}}, quality.Row{1.5})
		report := quality.NewChecker(mismatched).RunAllChecks(quality.WithExpectedTypes(quality.Schema{
			"post_id": quality.Is(quality.TypeInteger),
		}))
		assert.False(t, report.Passed)
		assert.Equal(t, []string{quality.CheckNameTypes}, report.FailedChecks())
	})

	t.Run("threshold option is applied", func(t *testing.T) {
		b := mustBatch(t, []quality.Column{{Name: "title", Type: quality.TypeString}},
			quality.Row{nil}, quality.Row{"a"}, quality.Row{"b"}, quality.Row{"c"})

		assert.True(t, quality.NewChecker(b).RunAllChecks().Passed)
		assert.False(t, quality.NewChecker(b).RunAllChecks(quality.WithMissingThreshold(0.2)).Passed)
	})

	t.Run("deterministic for the same input", func(t *testing.T) {
		for seed := int64(1); seed <= 20; seed++ {
			first := quality.NewChecker(fakePosts(t, seed, 25)).RunAllChecks(quality.WithExpectedTypes(postsSchema))
			second := quality.NewChecker(fakePosts(t, seed, 25)).RunAllChecks(quality.WithExpectedTypes(postsSchema))
			assert.Equal(t, first, second, "seed %d", seed)
		}
	})

	t.Run("nil batch fails every check", func(t *testing.T) {
		report := quality.NewChecker(nil).RunAllChecks(quality.WithExpectedTypes(postsSchema))
		assert.False(t, report.Passed)
		assert.Len(t, report.FailedChecks(), 4)
	})
}

func TestChecker_IssueLog(t *testing.T) {
	b := mustBatch(t, []quality.Column{{Name: "id", Type: quality.TypeInteger}},
		quality.Row{int64(1)}, quality.Row{int64(1)})
	c := quality.NewChecker(b)

	assert.True(t, c.CheckEmpty().Passed)
	assert.Empty(t, c.Issues())

	c.CheckDuplicates()
	c.CheckDuplicates()
	assert.Equal(t, []string{
		"Number of duplicate rows found: 1",
		"Number of duplicate rows found: 1",
	}, c.Issues())

	report := c.RunAllChecks()
	assert.Len(t, report.Issues, 3, "issues accumulate across calls")

	c.ResetIssues()
	assert.Empty(t, c.Issues())
	assert.Len(t, report.Issues, 3, "report keeps its own snapshot")

	t.Run("record validation does not touch the log", func(t *testing.T) {
		c.ResetIssues()
		ok, _ := c.ValidateRecord(quality.Record{}, quality.Schema{"city": quality.Is(quality.TypeString)})
		assert.False(t, ok)
		assert.Empty(t, c.Issues())
	})
}
