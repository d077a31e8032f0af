package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/dataguard/pkg/logger"
	"github.com/dmitrymomot/dataguard/pkg/quality"
)

// Cryptocurrencies fetches the top coins by market cap as a cryptocurrencies batch.
func (c *Client) Cryptocurrencies(ctx context.Context, limit int) (*quality.Batch, error) {
	if limit <= 0 {
		limit = DefaultCryptoLimit
	}
	query := url.Values{
		"vs_currency": {"usd"},
		"order":       {"market_cap_desc"},
		"per_page":    {strconv.Itoa(limit)},
		"page":        {"1"},
		"sparkline":   {"false"},
	}

	var coins []map[string]any
	if err := c.getJSON(ctx, c.cfg.CoinGeckoURL, "coins/markets", query, &coins); err != nil {
		c.log.ErrorContext(ctx, "failed to fetch cryptocurrencies", logger.Error(err))
		return nil, err
	}

	upper := cases.Upper(language.Und)
	fetchedAt := c.now().UTC()
	records := make([]quality.Record, 0, len(coins))
	for _, coin := range coins {
		symbol, _ := coin["symbol"].(string)
		records = append(records, quality.Record{
			"symbol":             upper.String(symbol),
			"name":               coin["name"],
			"current_price":      coin["current_price"],
			"market_cap":         coin["market_cap"],
			"market_cap_rank":    coin["market_cap_rank"],
			"trading_volume_24h": coin["total_volume"],
			"price_change_24h":   coin["price_change_percentage_24h"],
			"timestamp":          fetchedAt,
			"source_api":         SourceCoinGecko,
		})
	}

	b, err := quality.BatchFromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	c.log.InfoContext(ctx, "fetched cryptocurrencies", logger.Records(b.RowCount()))
	return b, nil
}

type postsResponse struct {
	Posts []map[string]any `json:"posts"`
}

// Posts fetches blog posts as a posts batch with a computed word_count.
func (c *Client) Posts(ctx context.Context, limit int) (*quality.Batch, error) {
	if limit <= 0 {
		limit = DefaultPostsLimit
	}

	var resp postsResponse
	if err := c.getJSON(ctx, c.cfg.DummyJSONURL, "posts", url.Values{"limit": {strconv.Itoa(limit)}}, &resp); err != nil {
		c.log.ErrorContext(ctx, "failed to fetch posts", logger.Error(err))
		return nil, err
	}

	fetchedAt := c.now().UTC()
	records := make([]quality.Record, 0, len(resp.Posts))
	for _, post := range resp.Posts {
		body, _ := post["body"].(string)
		records = append(records, quality.Record{
			"post_id":    post["id"],
			"user_id":    post["userId"],
			"title":      post["title"],
			"body":       post["body"],
			"word_count": len(strings.Fields(body)),
			"timestamp":  fetchedAt,
			"source_api": SourceDummyJSON,
		})
	}

	b, err := quality.BatchFromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	c.log.InfoContext(ctx, "fetched posts", logger.Records(b.RowCount()))
	return b, nil
}

type weatherResponse struct {
	Main struct {
		Temp     any `json:"temp"`
		Humidity any `json:"humidity"`
		Pressure any `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed any `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// Weather fetches current conditions for a city as a weather record.
// Temperatures are metric.
func (c *Client) Weather(ctx context.Context, city string) (quality.Record, error) {
	if !c.WeatherEnabled() {
		return nil, ErrMissingAPIKey
	}
	if city == "" {
		city = DefaultCity
	}
	query := url.Values{
		"q":     {city},
		"appid": {c.cfg.WeatherAPIKey},
		"units": {"metric"},
	}

	var resp weatherResponse
	if err := c.getJSON(ctx, c.cfg.WeatherURL, "weather", query, &resp); err != nil {
		c.log.ErrorContext(ctx, "failed to fetch weather", slog.String("city", city), logger.Error(err))
		return nil, err
	}

	rec := quality.Record{
		"city":        city,
		"temperature": resp.Main.Temp,
		"humidity":    resp.Main.Humidity,
		"pressure":    resp.Main.Pressure,
		"wind_speed":  resp.Wind.Speed,
		"timestamp":   c.now().UTC(),
		"source":      "weather_api",
	}
	if len(resp.Weather) > 0 {
		rec["description"] = resp.Weather[0].Description
	}
	c.log.InfoContext(ctx, "fetched weather", slog.String("city", city))
	return rec, nil
}
