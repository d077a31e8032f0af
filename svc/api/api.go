package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/dataguard/pkg/clientip"
	"github.com/dmitrymomot/dataguard/pkg/httpserver"
	"github.com/dmitrymomot/dataguard/pkg/logger"
	"github.com/dmitrymomot/dataguard/pkg/quality"
	"github.com/dmitrymomot/dataguard/pkg/requestid"
	"github.com/dmitrymomot/dataguard/svc/snapshot"
)

const defaultMaxBody = 10 << 20

// StatsSource reports stored row counts and recent rows. *store.Store implements it.
type StatsSource interface {
	Stats(ctx context.Context) (map[string]int, error)
	Recent(ctx context.Context, table string, limit int) ([]map[string]any, error)
}

// API serves on-demand validation and the reporting endpoints.
type API struct {
	log          *slog.Logger
	stats        StatsSource
	snapshots    snapshot.Store
	checks       []httpserver.Check
	threshold    float64
	maxBody      int64
	readyTimeout time.Duration
	ipHeaders    []string
}

// Option configures an API.
type Option func(*API)

// WithLogger sets the logger for handlers and the access log.
func WithLogger(l *slog.Logger) Option {
	return func(a *API) {
		if l != nil {
			a.log = l
		}
	}
}

// WithStats enables /v1/stats and /v1/records.
func WithStats(s StatsSource) Option {
	return func(a *API) { a.stats = s }
}

// WithSnapshots enables /v1/summary and its history.
func WithSnapshots(s snapshot.Store) Option {
	return func(a *API) { a.snapshots = s }
}

// WithReadinessChecks adds dependencies probed by /health/ready.
func WithReadinessChecks(checks ...httpserver.Check) Option {
	return func(a *API) { a.checks = append(a.checks, checks...) }
}

// WithMissingThreshold sets the threshold used by on-demand validation.
func WithMissingThreshold(th float64) Option {
	return func(a *API) { a.threshold = th }
}

// WithTrustedIPHeaders sets the proxy headers the client address is read
// from. Defaults to clientip.DefaultHeaders.
func WithTrustedIPHeaders(headers ...string) Option {
	return func(a *API) { a.ipHeaders = headers }
}

// WithMaxBodySize caps validation request bodies.
func WithMaxBodySize(n int64) Option {
	return func(a *API) {
		if n > 0 {
			a.maxBody = n
		}
	}
}

// New creates an API. Endpoints whose source is not configured answer 503.
func New(opts ...Option) *API {
	a := &API{
		log:          logger.Discard(),
		threshold:    quality.DefaultMissingThreshold,
		maxBody:      defaultMaxBody,
		readyTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.With(logger.Component("api"))
	return a
}

// Router builds the HTTP routes.
//
//	GET  /health/live
//	GET  /health/ready
//	GET  /v1/domains
//	POST /v1/validate
//	POST /v1/validate/{domain}
//	GET  /v1/summary
//	GET  /v1/summary/history
//	GET  /v1/stats
//	GET  /v1/records/{table}
func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware(a.ipHeaders...))
	r.Use(middleware.Recoverer)

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(a.log, a.readyTimeout, a.checks...))

	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(accessLog(a.log))
		v1.Get("/domains", wrap(a.log, nil, a.domains))
		v1.Post("/validate", wrap(a.log, a.bindAll, a.validateAll))
		v1.Post("/validate/{domain}", wrap(a.log, a.bindDomain, a.validateDomain))
		v1.Get("/summary", wrap(a.log, nil, a.summary))
		v1.Get("/summary/history", wrap(a.log, bindLimit, a.history))
		v1.Get("/stats", wrap(a.log, nil, a.tableStats))
		v1.Get("/records/{table}", wrap(a.log, bindRecords, a.records))
	})
	return r
}
