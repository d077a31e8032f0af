package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/dmitrymomot/dataguard/pkg/logger"
	"github.com/dmitrymomot/dataguard/pkg/quality"
)

const maxTitleLen = 500

const upsertCryptocurrency = `
INSERT INTO cryptocurrency_data (
    symbol, name, current_price, market_cap, market_cap_rank,
    trading_volume_24h, price_change_24h, validation_passed, fetched_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (symbol) DO UPDATE SET
    name = excluded.name,
    current_price = excluded.current_price,
    market_cap = excluded.market_cap,
    market_cap_rank = excluded.market_cap_rank,
    trading_volume_24h = excluded.trading_volume_24h,
    price_change_24h = excluded.price_change_24h,
    validation_passed = excluded.validation_passed,
    fetched_at = excluded.fetched_at`

const upsertPost = `
INSERT INTO posts_data (
    post_id, user_id, title, body, word_count, validation_passed, fetched_at
) VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (post_id) DO UPDATE SET
    title = excluded.title,
    body = excluded.body,
    word_count = excluded.word_count,
    validation_passed = excluded.validation_passed,
    fetched_at = excluded.fetched_at`

const insertRun = `
INSERT INTO api_runs (
    run_id, api_name, status, records_fetched, records_validated,
    records_stored, errors_found, error, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Run statuses.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// RunLog summarises what one pipeline run did with one API.
type RunLog struct {
	RunID            string    `json:"run_id"`
	APIName          string    `json:"api_name"`
	Status           string    `json:"status"`
	RecordsFetched   int       `json:"records_fetched"`
	RecordsValidated int       `json:"records_validated"`
	RecordsStored    int       `json:"records_stored"`
	ErrorsFound      int       `json:"errors_found"`
	Error            string    `json:"error,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// StoreCryptocurrencies upserts one row per coin keyed by symbol and returns
// the number of rows written. Rows without a symbol are skipped.
func (s *Store) StoreCryptocurrencies(ctx context.Context, b *quality.Batch, passed bool) (int, error) {
	fetchedAt := s.now().UTC()
	return s.writeBatch(ctx, TableCryptocurrencies, upsertCryptocurrency, b, func(i int) ([]any, bool) {
		symbol := stringValue(b, i, "symbol")
		if !symbol.Valid || symbol.String == "" {
			return nil, false
		}
		return []any{
			symbol,
			stringValue(b, i, "name"),
			floatValue(b, i, "current_price"),
			intValue(b, i, "market_cap"),
			intValue(b, i, "market_cap_rank"),
			intValue(b, i, "trading_volume_24h"),
			floatValue(b, i, "price_change_24h"),
			passed,
			fetchedAt,
		}, true
	})
}

// StorePosts upserts one row per post keyed by post_id and returns the number
// of rows written. Rows without a post_id are skipped; titles are cut to 500
// characters.
func (s *Store) StorePosts(ctx context.Context, b *quality.Batch, passed bool) (int, error) {
	fetchedAt := s.now().UTC()
	return s.writeBatch(ctx, TablePosts, upsertPost, b, func(i int) ([]any, bool) {
		postID := intValue(b, i, "post_id")
		if !postID.Valid {
			return nil, false
		}
		title := stringValue(b, i, "title")
		if r := []rune(title.String); len(r) > maxTitleLen {
			title.String = string(r[:maxTitleLen])
		}
		wordCount := intValue(b, i, "word_count")
		return []any{
			postID,
			intValue(b, i, "user_id"),
			title,
			stringValue(b, i, "body"),
			wordCount.Int64,
			passed,
			fetchedAt,
		}, true
	})
}

// StoreRunLog appends a run log entry.
func (s *Store) StoreRunLog(ctx context.Context, r RunLog) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}
	errText := sql.NullString{String: r.Error, Valid: r.Error != ""}
	_, err := s.db.ExecContext(ctx, s.rebind(insertRun),
		r.RunID, r.APIName, r.Status,
		r.RecordsFetched, r.RecordsValidated, r.RecordsStored, r.ErrorsFound,
		errText, r.CreatedAt.UTC(),
	)
	if err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	s.log.InfoContext(ctx, "run log stored",
		slog.String("api", r.APIName),
		slog.String("status", r.Status),
		logger.RunID(r.RunID),
	)
	return nil
}

func (s *Store) writeBatch(ctx context.Context, table, query string, b *quality.Batch, args func(int) ([]any, bool)) (n int, err error) {
	if b.RowCount() == 0 {
		s.log.WarnContext(ctx, "empty batch, nothing to store", slog.String("table", table))
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Join(ErrWriteFailed, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, s.rebind(query))
	if err != nil {
		return 0, errors.Join(ErrWriteFailed, err)
	}
	defer stmt.Close()

	skipped := 0
	for i := range b.RowCount() {
		values, ok := args(i)
		if !ok {
			skipped++
			continue
		}
		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			return 0, errors.Join(ErrWriteFailed, fmt.Errorf("%s row %d: %w", table, i, err))
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Join(ErrWriteFailed, err)
	}

	s.log.InfoContext(ctx, "batch stored",
		slog.String("table", table),
		logger.Records(n),
		slog.Int("skipped", skipped),
	)
	return n, nil
}

func stringValue(b *quality.Batch, row int, col string) sql.NullString {
	v, _ := b.Value(row, col)
	switch val := v.(type) {
	case nil:
		return sql.NullString{}
	case string:
		return sql.NullString{String: val, Valid: true}
	default:
		return sql.NullString{String: fmt.Sprint(val), Valid: true}
	}
}

func floatValue(b *quality.Batch, row int, col string) sql.NullFloat64 {
	v, _ := b.Value(row, col)
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return sql.NullFloat64{}
		}
		return sql.NullFloat64{Float64: val, Valid: true}
	case int64:
		return sql.NullFloat64{Float64: float64(val), Valid: true}
	case int:
		return sql.NullFloat64{Float64: float64(val), Valid: true}
	case json.Number:
		f, err := val.Float64()
		return sql.NullFloat64{Float64: f, Valid: err == nil}
	case string:
		f, err := strconv.ParseFloat(val, 64)
		return sql.NullFloat64{Float64: f, Valid: err == nil}
	default:
		return sql.NullFloat64{}
	}
}

func intValue(b *quality.Batch, row int, col string) sql.NullInt64 {
	v, _ := b.Value(row, col)
	switch val := v.(type) {
	case int64:
		return sql.NullInt64{Int64: val, Valid: true}
	case int:
		return sql.NullInt64{Int64: int64(val), Valid: true}
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return sql.NullInt64{}
		}
		return sql.NullInt64{Int64: int64(val), Valid: true}
	case string:
		n, err := strconv.ParseInt(val, 10, 64)
		return sql.NullInt64{Int64: n, Valid: err == nil}
	default:
		return sql.NullInt64{}
	}
}
