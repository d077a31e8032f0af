package fetch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dataguard/pkg/quality"
	"github.com/dmitrymomot/dataguard/svc/fetch"
	"github.com/dmitrymomot/dataguard/svc/validation"
)

var fixedNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func newClient(t *testing.T, handler http.HandlerFunc, mutate func(*fetch.Config)) *fetch.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := fetch.DefaultConfig()
	cfg.CoinGeckoURL = srv.URL + "/api/v3"
	cfg.DummyJSONURL = srv.URL
	cfg.WeatherURL = srv.URL + "/data/2.5"
	if mutate != nil {
		mutate(&cfg)
	}
	return fetch.New(cfg, fetch.WithClock(func() time.Time { return fixedNow }))
}

func TestClient_Cryptocurrencies(t *testing.T) {
	t.Parallel()

	var gotQuery string
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/coins/markets", r.URL.Path)
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"symbol":"btc","name":"Bitcoin","current_price":64000.5,"market_cap":1260000000000,"market_cap_rank":1,"total_volume":31000000000,"price_change_percentage_24h":-1.2},
			{"symbol":"eth","name":"Ethereum","current_price":3100,"market_cap":372000000000,"market_cap_rank":2,"total_volume":15000000000,"price_change_percentage_24h":0.4}
		]`))
	}, nil)

	b, err := client.Cryptocurrencies(context.Background(), 2)
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "per_page=2")
	assert.Contains(t, gotQuery, "vs_currency=usd")
	require.Equal(t, 2, b.RowCount())

	symbol, _ := b.Value(0, "symbol")
	assert.Equal(t, "BTC", symbol)
	price, _ := b.Value(1, "current_price")
	assert.Equal(t, float64(3100), price)
	rank, _ := b.Value(1, "market_cap_rank")
	assert.Equal(t, int64(2), rank)
	ts, _ := b.Value(0, "timestamp")
	assert.Equal(t, fixedNow, ts)

	col, ok := b.Column("trading_volume_24h")
	require.True(t, ok)
	assert.Equal(t, quality.TypeInteger, col.Type)

	report := validation.New().ValidateTabular(context.Background(), validation.DomainCryptocurrencies, b)
	assert.True(t, report.Passed, report.Issues)
}

func TestClient_Posts(t *testing.T) {
	t.Parallel()

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"posts":[
			{"id":1,"userId":7,"title":"first","body":"one two  three"},
			{"id":2,"userId":8,"title":"second","body":""}
		],"total":2}`))
	}, nil)

	b, err := client.Posts(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, 2, b.RowCount())

	words, _ := b.Value(0, "word_count")
	assert.Equal(t, int64(3), words)
	words, _ = b.Value(1, "word_count")
	assert.Equal(t, int64(0), words)
	userID, _ := b.Value(1, "user_id")
	assert.Equal(t, int64(8), userID)

	report := validation.New().ValidateTabular(context.Background(), validation.DomainPosts, b)
	assert.True(t, report.Passed, report.Issues)
}

func TestClient_Weather(t *testing.T) {
	t.Parallel()

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		}, nil)
		assert.False(t, client.WeatherEnabled())
		_, err := client.Weather(context.Background(), "London")
		assert.ErrorIs(t, err, fetch.ErrMissingAPIKey)
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/data/2.5/weather", r.URL.Path)
			assert.Equal(t, "secret", r.URL.Query().Get("appid"))
			assert.Equal(t, "metric", r.URL.Query().Get("units"))
			_, _ = w.Write([]byte(`{"main":{"temp":11.5,"humidity":81,"pressure":1012},"wind":{"speed":4.1},"weather":[{"description":"light rain"}]}`))
		}, func(c *fetch.Config) { c.WeatherAPIKey = "secret" })

		rec, err := client.Weather(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, "London", rec["city"])
		assert.Equal(t, "light rain", rec["description"])
		assert.Equal(t, quality.TypeInteger, quality.TypeOf(rec["humidity"]))
		assert.Equal(t, quality.TypeFloat, quality.TypeOf(rec["temperature"]))

		ok, details := validation.New().ValidateStructured(context.Background(), validation.DomainWeather, rec)
		assert.True(t, ok, details.Errors)
	})

	t.Run("unauthorized", func(t *testing.T) {
		t.Parallel()
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"cod":401,"message":"Invalid API key"}`, http.StatusUnauthorized)
		}, func(c *fetch.Config) { c.WeatherAPIKey = "bad" })

		_, err := client.Weather(context.Background(), "Paris")
		require.Error(t, err)
		assert.ErrorIs(t, err, fetch.ErrUnauthorized)

		var httpErr *fetch.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
		assert.NotContains(t, httpErr.URL, "bad")
		assert.Contains(t, httpErr.Body, "Invalid API key")
	})
}

func TestClient_Errors(t *testing.T) {
	t.Parallel()

	t.Run("server error", func(t *testing.T) {
		t.Parallel()
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}, nil)
		_, err := client.Posts(context.Background(), 1)

		var httpErr *fetch.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
		assert.NotErrorIs(t, err, fetch.ErrUnauthorized)
	})

	t.Run("bad json", func(t *testing.T) {
		t.Parallel()
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"posts":`))
		}, nil)
		_, err := client.Posts(context.Background(), 1)
		assert.ErrorIs(t, err, fetch.ErrInvalidResponse)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {}, nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := client.Cryptocurrencies(ctx, 1)
		assert.ErrorIs(t, err, fetch.ErrRequestFailed)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
