package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/dataguard/pkg/logger"
)

// Upstream API names as they appear in run logs.
const (
	SourceCoinGecko = "Coingecko API"
	SourceDummyJSON = "DummyJSON API"
	SourceWeather   = "OpenWeatherMap API"
)

const maxErrorBody = 512

// Client fetches data from the public APIs the pipeline validates.
// It is safe for concurrent use.
type Client struct {
	cfg  Config
	http *http.Client
	log  *slog.Logger
	now  func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default client built from Config.Timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithClock replaces time.Now for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a Client for the configured base URLs.
func New(cfg Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
		log:  logger.Discard(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(logger.Component("fetch"))
	return c
}

// WeatherEnabled reports whether a weather API key is configured.
func (c *Client) WeatherEnabled() bool {
	return c.cfg.WeatherAPIKey != ""
}

func (c *Client) getJSON(ctx context.Context, base, path string, query url.Values, dst any) error {
	endpoint, err := url.JoinPath(base, path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPError{
			StatusCode: resp.StatusCode,
			URL:        redact(req.URL),
			Body:       strings.TrimSpace(string(body)),
		}
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return errors.Join(ErrInvalidResponse, err)
	}
	return nil
}

// redact strips credentials from a URL before it is put into an error.
func redact(u *url.URL) string {
	clean := *u
	q := clean.Query()
	if q.Has("appid") {
		q.Set("appid", "REDACTED")
		clean.RawQuery = q.Encode()
	}
	return clean.String()
}
