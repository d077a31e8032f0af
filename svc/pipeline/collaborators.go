package pipeline

import (
	"context"

	"github.com/dmitrymomot/dataguard/pkg/archive"
	"github.com/dmitrymomot/dataguard/pkg/quality"
	"github.com/dmitrymomot/dataguard/svc/store"
	"github.com/dmitrymomot/dataguard/svc/validation"
)

// Fetcher pulls raw data from the upstream APIs. *fetch.Client implements it.
type Fetcher interface {
	Cryptocurrencies(ctx context.Context, limit int) (*quality.Batch, error)
	Posts(ctx context.Context, limit int) (*quality.Batch, error)
	Weather(ctx context.Context, city string) (quality.Record, error)
	WeatherEnabled() bool
}

// Persister writes validated data and run logs. *store.Store implements it.
type Persister interface {
	StoreCryptocurrencies(ctx context.Context, b *quality.Batch, passed bool) (int, error)
	StorePosts(ctx context.Context, b *quality.Batch, passed bool) (int, error)
	StoreRunLog(ctx context.Context, r store.RunLog) error
}

// Quarantiner archives rejected payloads. *quarantine.Quarantine implements it.
type Quarantiner interface {
	Batch(ctx context.Context, runID, domain string, b *quality.Batch, report quality.Report) (archive.Object, error)
	Record(ctx context.Context, runID, domain string, rec quality.Record, details validation.StructuredDetails) (archive.Object, error)
}
