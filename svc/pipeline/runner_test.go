package pipeline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dataguard/pkg/archive"
	"github.com/dmitrymomot/dataguard/pkg/quality"
	"github.com/dmitrymomot/dataguard/svc/fetch"
	"github.com/dmitrymomot/dataguard/svc/pipeline"
	"github.com/dmitrymomot/dataguard/svc/quarantine"
	"github.com/dmitrymomot/dataguard/svc/snapshot"
	"github.com/dmitrymomot/dataguard/svc/store"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Cryptocurrencies(ctx context.Context, limit int) (*quality.Batch, error) {
	args := m.Called(ctx, limit)
	b, _ := args.Get(0).(*quality.Batch)
	return b, args.Error(1)
}

func (m *MockFetcher) Posts(ctx context.Context, limit int) (*quality.Batch, error) {
	args := m.Called(ctx, limit)
	b, _ := args.Get(0).(*quality.Batch)
	return b, args.Error(1)
}

func (m *MockFetcher) Weather(ctx context.Context, city string) (quality.Record, error) {
	args := m.Called(ctx, city)
	rec, _ := args.Get(0).(quality.Record)
	return rec, args.Error(1)
}

func (m *MockFetcher) WeatherEnabled() bool {
	return m.Called().Bool(0)
}

type MockPersister struct {
	mock.Mock
}

func (m *MockPersister) StoreCryptocurrencies(ctx context.Context, b *quality.Batch, passed bool) (int, error) {
	args := m.Called(ctx, b, passed)
	return args.Int(0), args.Error(1)
}

func (m *MockPersister) StorePosts(ctx context.Context, b *quality.Batch, passed bool) (int, error) {
	args := m.Called(ctx, b, passed)
	return args.Int(0), args.Error(1)
}

func (m *MockPersister) StoreRunLog(ctx context.Context, r store.RunLog) error {
	return m.Called(ctx, r).Error(0)
}

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func cryptoBatch(t *testing.T) *quality.Batch {
	t.Helper()
	b, err := quality.BatchFromRecords([]quality.Record{
		{"symbol": "BTC", "name": "Bitcoin", "current_price": 64000.5, "market_cap": 1260000000000, "market_cap_rank": 1, "trading_volume_24h": 31000000000, "price_change_24h": -1.2},
		{"symbol": "ETH", "name": "Ethereum", "current_price": 3100.25, "market_cap": 372000000000, "market_cap_rank": 2, "trading_volume_24h": 15000000000, "price_change_24h": 0.4},
	})
	require.NoError(t, err)
	return b
}

func postsBatch(t *testing.T, duplicate bool) *quality.Batch {
	t.Helper()
	second := quality.Record{"post_id": 2, "user_id": 5, "title": "b", "body": "x y", "word_count": 2}
	if duplicate {
		second = quality.Record{"post_id": 1, "user_id": 4, "title": "a", "body": "x", "word_count": 1}
	}
	b, err := quality.BatchFromRecords([]quality.Record{
		{"post_id": 1, "user_id": 4, "title": "a", "body": "x", "word_count": 1},
		second,
	})
	require.NoError(t, err)
	return b
}

func runLog(api, status string) any {
	return mock.MatchedBy(func(r store.RunLog) bool {
		return r.APIName == api && r.Status == status && r.RunID == "run-1"
	})
}

func newRunner(t *testing.T, cfg pipeline.Config, f *MockFetcher, p *MockPersister, opts ...pipeline.Option) *pipeline.Runner {
	t.Helper()
	opts = append([]pipeline.Option{
		pipeline.WithClock(func() time.Time { return fixedNow }),
		pipeline.WithRunIDGenerator(func() string { return "run-1" }),
	}, opts...)
	r, err := pipeline.New(cfg, f, p, opts...)
	require.NoError(t, err)
	return r
}

func TestRunner_Run_AllPassed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := &MockFetcher{}
	f.On("Cryptocurrencies", mock.Anything, 20).Return(cryptoBatch(t), nil)
	f.On("Posts", mock.Anything, 50).Return(postsBatch(t, false), nil)

	p := &MockPersister{}
	p.On("StoreCryptocurrencies", mock.Anything, mock.Anything, true).Return(2, nil)
	p.On("StorePosts", mock.Anything, mock.Anything, true).Return(2, nil)
	p.On("StoreRunLog", mock.Anything, runLog(fetch.SourceCoinGecko, store.StatusSuccess)).Return(nil).Once()
	p.On("StoreRunLog", mock.Anything, runLog(fetch.SourceDummyJSON, store.StatusSuccess)).Return(nil).Once()

	snaps := snapshot.NewMemoryStore(5)
	res, err := newRunner(t, pipeline.DefaultConfig(), f, p, pipeline.WithSnapshots(snaps)).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, "run-1", res.RunID)
	assert.Equal(t, 2, res.TotalAPIs)
	assert.Equal(t, 2, res.SuccessfulFetches)
	assert.Equal(t, 2, res.SuccessfulValidations)
	assert.Equal(t, 2, res.SuccessfulStores)
	assert.Equal(t, 4, res.TotalRecordsFetched)
	assert.Equal(t, 4, res.TotalRecordsStored)
	assert.True(t, res.OverallPassed())
	assert.Zero(t, res.Duration())

	latest, err := snaps.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "run-1", latest.RunID)
	assert.True(t, latest.OverallPassed)
	assert.Equal(t, 2, latest.Summary.Total)
	assert.Equal(t, 4, latest.Counters["total_records_stored"])

	f.AssertNotCalled(t, "Weather", mock.Anything, mock.Anything)
	p.AssertExpectations(t)
}

func TestRunner_Run_Failures(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := &MockFetcher{}
	f.On("Cryptocurrencies", mock.Anything, 20).Return(nil, errors.New("connection refused"))
	f.On("Posts", mock.Anything, 50).Return(postsBatch(t, true), nil)

	p := &MockPersister{}
	p.On("StoreRunLog", mock.Anything, runLog(fetch.SourceCoinGecko, store.StatusFailed)).Return(nil).Once()
	p.On("StoreRunLog", mock.Anything, runLog(fetch.SourceDummyJSON, store.StatusFailed)).Return(nil).Once()

	storage, err := archive.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	q := quarantine.New(storage, quarantine.WithClock(func() time.Time { return fixedNow }))

	res, err := newRunner(t, pipeline.DefaultConfig(), f, p, pipeline.WithQuarantine(q)).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, res.TotalAPIs)
	assert.Equal(t, 1, res.SuccessfulFetches)
	assert.Zero(t, res.SuccessfulValidations)
	assert.Zero(t, res.SuccessfulStores)
	assert.False(t, res.OverallPassed())

	crypto := res.Outcomes["cryptocurrencies"]
	assert.Contains(t, crypto.Error, "connection refused")
	assert.Zero(t, crypto.Fetched)

	posts := res.Outcomes["posts"]
	assert.False(t, posts.Passed)
	assert.Equal(t, 2, posts.Fetched)
	assert.Equal(t, "posts/2026-06-01/run-1.json", posts.Quarantined)
	assert.Contains(t, posts.Error, "duplicates")

	objects, err := q.List(ctx, "posts")
	require.NoError(t, err)
	assert.Len(t, objects, 1)

	p.AssertNotCalled(t, "StorePosts", mock.Anything, mock.Anything, mock.Anything)
	p.AssertExpectations(t)
}

func TestRunner_Run_Weather(t *testing.T) {
	t.Parallel()

	cfg := pipeline.DefaultConfig()
	cfg.FetchWeather = true

	t.Run("skipped without key", func(t *testing.T) {
		t.Parallel()
		f := &MockFetcher{}
		f.On("WeatherEnabled").Return(false)
		f.On("Cryptocurrencies", mock.Anything, 20).Return(cryptoBatch(t), nil)
		f.On("Posts", mock.Anything, 50).Return(postsBatch(t, false), nil)

		p := &MockPersister{}
		p.On("StoreCryptocurrencies", mock.Anything, mock.Anything, true).Return(2, nil)
		p.On("StorePosts", mock.Anything, mock.Anything, true).Return(2, nil)
		p.On("StoreRunLog", mock.Anything, mock.Anything).Return(nil)

		res, err := newRunner(t, cfg, f, p).Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, res.TotalAPIs)
		f.AssertNotCalled(t, "Weather", mock.Anything, mock.Anything)
	})

	t.Run("fetched and logged", func(t *testing.T) {
		t.Parallel()
		f := &MockFetcher{}
		f.On("WeatherEnabled").Return(true)
		f.On("Cryptocurrencies", mock.Anything, 20).Return(cryptoBatch(t), nil)
		f.On("Posts", mock.Anything, 50).Return(postsBatch(t, false), nil)
		f.On("Weather", mock.Anything, "London").Return(quality.Record{
			"city":        "London",
			"temperature": 11.5,
			"humidity":    81,
			"pressure":    1012,
			"timestamp":   fixedNow,
			"source":      "weather_api",
		}, nil)

		p := &MockPersister{}
		p.On("StoreCryptocurrencies", mock.Anything, mock.Anything, true).Return(2, nil)
		p.On("StorePosts", mock.Anything, mock.Anything, true).Return(2, nil)
		p.On("StoreRunLog", mock.Anything, mock.MatchedBy(func(r store.RunLog) bool {
			return r.APIName != fetch.SourceWeather
		})).Return(nil)
		p.On("StoreRunLog", mock.Anything, mock.MatchedBy(func(r store.RunLog) bool {
			return r.APIName == fetch.SourceWeather && r.Status == store.StatusSuccess && r.RecordsStored == 1
		})).Return(nil).Once()

		res, err := newRunner(t, cfg, f, p).Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, res.TotalAPIs)
		assert.Equal(t, 3, res.SuccessfulValidations)
		assert.Equal(t, 3, res.SuccessfulStores)
		assert.Equal(t, 5, res.TotalRecordsStored)
		p.AssertExpectations(t)
	})
}

func TestRunner_Run_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &MockFetcher{}
	f.On("Cryptocurrencies", mock.Anything, mock.Anything).Return(nil, context.Canceled)
	f.On("Posts", mock.Anything, mock.Anything).Return(nil, context.Canceled)
	p := &MockPersister{}

	_, err := newRunner(t, pipeline.DefaultConfig(), f, p).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	p.AssertNotCalled(t, "StoreRunLog", mock.Anything, mock.Anything)
}

func TestNew_RequiresCollaborators(t *testing.T) {
	t.Parallel()
	_, err := pipeline.New(pipeline.DefaultConfig(), nil, &MockPersister{})
	assert.ErrorIs(t, err, pipeline.ErrNotConfigured)
}
