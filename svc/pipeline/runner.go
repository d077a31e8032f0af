package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/dataguard/pkg/logger"
	"github.com/dmitrymomot/dataguard/pkg/quality"
	"github.com/dmitrymomot/dataguard/svc/fetch"
	"github.com/dmitrymomot/dataguard/svc/snapshot"
	"github.com/dmitrymomot/dataguard/svc/store"
	"github.com/dmitrymomot/dataguard/svc/validation"
)

// Runner executes one fetch, validate, persist cycle per Run call.
// Run may be called concurrently; each call builds its own Validator.
type Runner struct {
	cfg        Config
	fetcher    Fetcher
	persister  Persister
	quarantine Quarantiner
	snapshots  snapshot.Store
	log        *slog.Logger
	now        func() time.Time
	newID      func() string
}

// Option configures a Runner.
type Option func(*Runner)

// WithQuarantine archives data that fails validation.
func WithQuarantine(q Quarantiner) Option {
	return func(r *Runner) { r.quarantine = q }
}

// WithSnapshots publishes a snapshot after every run.
func WithSnapshots(s snapshot.Store) Option {
	return func(r *Runner) { r.snapshots = s }
}

// WithLogger sets the runner logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// WithRunIDGenerator replaces the default UUID run ids.
func WithRunIDGenerator(fn func() string) Option {
	return func(r *Runner) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// New creates a Runner. The fetcher and persister are required.
func New(cfg Config, f Fetcher, p Persister, opts ...Option) (*Runner, error) {
	if f == nil || p == nil {
		return nil, ErrNotConfigured
	}
	r := &Runner{
		cfg:       cfg,
		fetcher:   f,
		persister: p,
		log:       logger.Discard(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(logger.Component("pipeline"))
	return r, nil
}

// fetched is the raw result of one source.
type fetched struct {
	domain string
	api    string
	input  validation.Input
	count  int
	err    error
}

type source struct {
	domain string
	api    string
	fetch  func(ctx context.Context) (validation.Input, int, error)
}

func (r *Runner) sources(ctx context.Context) []source {
	srcs := []source{
		{
			domain: validation.DomainCryptocurrencies,
			api:    fetch.SourceCoinGecko,
			fetch: func(ctx context.Context) (validation.Input, int, error) {
				b, err := r.fetcher.Cryptocurrencies(ctx, r.cfg.CryptoLimit)
				return validation.Tabular(b), b.RowCount(), err
			},
		},
		{
			domain: validation.DomainPosts,
			api:    fetch.SourceDummyJSON,
			fetch: func(ctx context.Context) (validation.Input, int, error) {
				b, err := r.fetcher.Posts(ctx, r.cfg.PostsLimit)
				return validation.Tabular(b), b.RowCount(), err
			},
		},
	}

	if !r.cfg.FetchWeather {
		return srcs
	}
	if !r.fetcher.WeatherEnabled() {
		r.log.WarnContext(ctx, "weather API key not provided, skipping weather data")
		return srcs
	}
	return append(srcs, source{
		domain: validation.DomainWeather,
		api:    fetch.SourceWeather,
		fetch: func(ctx context.Context) (validation.Input, int, error) {
			rec, err := r.fetcher.Weather(ctx, r.cfg.WeatherCity)
			n := 0
			if len(rec) > 0 {
				n = 1
			}
			return validation.Structured(rec), n, err
		},
	})
}

// Run fetches every enabled source concurrently, then validates each result,
// stores what passed, quarantines what failed, writes a run log per API and
// publishes a snapshot. Per-source failures are recorded in the results; the
// returned error is non-nil only when ctx ends before the run completes.
func (r *Runner) Run(ctx context.Context) (Results, error) {
	res := Results{
		RunID:     r.newID(),
		StartedAt: r.now(),
		Outcomes:  make(map[string]Outcome),
	}
	log := r.log.With(logger.RunID(res.RunID))
	log.InfoContext(ctx, "starting pipeline run")

	srcs := r.sources(ctx)
	results := make([]fetched, len(srcs))

	var g errgroup.Group
	for i, src := range srcs {
		g.Go(func() error {
			in, n, err := src.fetch(ctx)
			if err == nil && n == 0 {
				err = ErrEmptyFetch
			}
			results[i] = fetched{domain: src.domain, api: src.api, input: in, count: n, err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		res.FinishedAt = r.now()
		log.WarnContext(ctx, "pipeline run canceled", logger.Error(err))
		return res, err
	}

	v := validation.New(
		validation.WithLogger(r.log),
		validation.WithMissingThreshold(r.cfg.MissingThreshold),
		validation.WithClock(r.now),
	)
	for _, f := range results {
		out := r.process(ctx, log, v, res.RunID, f)
		res.Outcomes[f.domain] = out

		res.TotalAPIs++
		if f.err != nil {
			continue
		}
		res.SuccessfulFetches++
		res.TotalRecordsFetched += out.Fetched
		if out.Passed {
			res.SuccessfulValidations++
		}
		if out.Stored > 0 {
			res.SuccessfulStores++
			res.TotalRecordsStored += out.Stored
		}
	}
	res.FinishedAt = r.now()

	r.publish(ctx, log, res, v.Summary())

	log.InfoContext(ctx, "pipeline run complete",
		slog.Int("apis", res.TotalAPIs),
		slog.Int("successful_fetches", res.SuccessfulFetches),
		slog.Int("successful_validations", res.SuccessfulValidations),
		slog.Int("successful_stores", res.SuccessfulStores),
		slog.Int("records_fetched", res.TotalRecordsFetched),
		slog.Int("records_stored", res.TotalRecordsStored),
		logger.Duration(res.Duration()),
	)
	return res, nil
}

func (r *Runner) process(ctx context.Context, log *slog.Logger, v *validation.Validator, runID string, f fetched) Outcome {
	log = log.With(logger.Domain(f.domain))
	out := Outcome{Domain: f.domain, API: f.api, Fetched: f.count}

	if f.err != nil {
		log.ErrorContext(ctx, "fetch failed", slog.String("api", f.api), logger.Error(f.err))
		out.Error = f.err.Error()
		out.Fetched = 0
		r.writeRunLog(ctx, log, runID, out)
		return out
	}

	d, _ := validation.Lookup(f.domain)
	if d.Kind == validation.KindStructured {
		passed, details := v.ValidateStructured(ctx, f.domain, f.input.Record)
		out.Passed = passed
		out.ErrorsFound = len(details.Errors)
		if details.Error != "" {
			out.ErrorsFound++
		}
		if passed {
			out.Validated = f.count
			// Structured sources keep only their run log, which is the stored row.
			out.Stored = f.count
		} else {
			out.Error = fmt.Sprintf("validation failed: %v", details.Errors)
			if r.quarantine != nil {
				if obj, err := r.quarantine.Record(ctx, runID, f.domain, f.input.Record, details); err != nil {
					log.ErrorContext(ctx, "quarantine failed", logger.Error(err))
				} else {
					out.Quarantined = obj.Key
				}
			}
		}
		if err := r.writeRunLog(ctx, log, runID, out); err != nil && out.Passed {
			out.Stored = 0
			out.Error = err.Error()
		}
		return out
	}

	report := v.ValidateTabular(ctx, f.domain, f.input.Batch)
	out.Passed = report.Passed
	out.Validated = report.RecordsValidated
	out.ErrorsFound = len(report.Issues)

	if !report.Passed {
		out.Error = "validation failed: " + failureDetail(report)
		if r.quarantine != nil {
			if obj, err := r.quarantine.Batch(ctx, runID, f.domain, f.input.Batch, report); err != nil {
				log.ErrorContext(ctx, "quarantine failed", logger.Error(err))
			} else {
				out.Quarantined = obj.Key
			}
		}
		r.writeRunLog(ctx, log, runID, out)
		return out
	}

	stored, err := r.storeBatch(ctx, f.domain, f.input.Batch)
	if err != nil {
		log.ErrorContext(ctx, "failed to store data", logger.Error(err))
		out.Error = err.Error()
	}
	out.Stored = stored
	r.writeRunLog(ctx, log, runID, out)
	return out
}

func (r *Runner) storeBatch(ctx context.Context, domain string, b *quality.Batch) (int, error) {
	switch domain {
	case validation.DomainCryptocurrencies:
		return r.persister.StoreCryptocurrencies(ctx, b, true)
	case validation.DomainPosts:
		return r.persister.StorePosts(ctx, b, true)
	}
	return 0, fmt.Errorf("no table for domain %q", domain)
}

func (r *Runner) writeRunLog(ctx context.Context, log *slog.Logger, runID string, out Outcome) error {
	status := store.StatusSuccess
	if out.Error != "" || !out.Passed {
		status = store.StatusFailed
	}
	err := r.persister.StoreRunLog(ctx, store.RunLog{
		RunID:            runID,
		APIName:          out.API,
		Status:           status,
		RecordsFetched:   out.Fetched,
		RecordsValidated: out.Validated,
		RecordsStored:    out.Stored,
		ErrorsFound:      out.ErrorsFound,
		Error:            out.Error,
		CreatedAt:        r.now(),
	})
	if err != nil {
		log.ErrorContext(ctx, "failed to store run log", logger.Error(err))
	}
	return err
}

func (r *Runner) publish(ctx context.Context, log *slog.Logger, res Results, summary validation.Summary) {
	if r.snapshots == nil {
		return
	}
	err := r.snapshots.Publish(ctx, snapshot.Snapshot{
		RunID:         res.RunID,
		StartedAt:     res.StartedAt,
		FinishedAt:    res.FinishedAt,
		OverallPassed: res.OverallPassed(),
		Counters:      res.Counters(),
		Summary:       summary,
	})
	if err != nil {
		log.ErrorContext(ctx, "failed to publish snapshot", logger.Error(err))
	}
}

func failureDetail(report quality.Report) string {
	if report.Details != "" {
		return report.Details
	}
	if failed := report.FailedChecks(); len(failed) > 0 {
		return fmt.Sprintf("%v", failed)
	}
	return "unknown error"
}
