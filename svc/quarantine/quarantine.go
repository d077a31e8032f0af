package quarantine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/dataguard/pkg/archive"
	"github.com/dmitrymomot/dataguard/pkg/logger"
	"github.com/dmitrymomot/dataguard/pkg/quality"
	"github.com/dmitrymomot/dataguard/svc/validation"
)

const contentType = "application/json"

// Entry is one rejected payload together with the verdict that rejected it.
type Entry struct {
	RunID         string                        `json:"run_id"`
	Domain        string                        `json:"domain"`
	Kind          validation.Kind               `json:"kind"`
	QuarantinedAt time.Time                     `json:"quarantined_at"`
	Report        *quality.Report               `json:"report,omitempty"`
	Batch         *quality.Batch                `json:"batch,omitempty"`
	Details       *validation.StructuredDetails `json:"details,omitempty"`
	Record        quality.Record                `json:"record,omitempty"`
}

// Quarantine writes payloads that failed validation to archive storage
// under <domain>/<yyyy-mm-dd>/<run id>.json.
type Quarantine struct {
	storage archive.Storage
	log     *slog.Logger
	now     func() time.Time
}

// Option configures a Quarantine.
type Option func(*Quarantine)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(q *Quarantine) {
		if l != nil {
			q.log = l
		}
	}
}

// WithClock replaces time.Now for entry dates.
func WithClock(now func() time.Time) Option {
	return func(q *Quarantine) {
		if now != nil {
			q.now = now
		}
	}
}

// New creates a Quarantine over storage.
func New(storage archive.Storage, opts ...Option) *Quarantine {
	q := &Quarantine{
		storage: storage,
		log:     logger.Discard(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.log = q.log.With(logger.Component("quarantine"))
	return q
}

// Batch archives a rejected tabular batch with its report.
func (q *Quarantine) Batch(ctx context.Context, runID, domain string, b *quality.Batch, report quality.Report) (archive.Object, error) {
	return q.put(ctx, Entry{
		RunID:  runID,
		Domain: domain,
		Kind:   validation.KindTabular,
		Report: &report,
		Batch:  b,
	})
}

// Record archives a rejected structured record with its validation details.
func (q *Quarantine) Record(ctx context.Context, runID, domain string, rec quality.Record, details validation.StructuredDetails) (archive.Object, error) {
	return q.put(ctx, Entry{
		RunID:   runID,
		Domain:  domain,
		Kind:    validation.KindStructured,
		Details: &details,
		Record:  rec,
	})
}

// List returns archived entries for a domain, or for every domain when domain is empty.
func (q *Quarantine) List(ctx context.Context, domain string) ([]archive.Object, error) {
	prefix := ""
	if domain != "" {
		prefix = domain + "/"
	}
	return q.storage.List(ctx, prefix)
}

// Load reads an archived entry back.
func (q *Quarantine) Load(ctx context.Context, key string) (Entry, error) {
	data, err := q.storage.Get(ctx, key)
	if err != nil {
		return Entry{}, err
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, errors.Join(ErrCorruptEntry, err)
	}
	return e, nil
}

func (q *Quarantine) put(ctx context.Context, e Entry) (archive.Object, error) {
	if e.RunID == "" || e.Domain == "" || strings.ContainsAny(e.Domain+e.RunID, "/\\") {
		return archive.Object{}, fmt.Errorf("%w: run %q domain %q", ErrInvalidEntry, e.RunID, e.Domain)
	}
	e.QuarantinedAt = q.now().UTC()

	data, err := json.Marshal(e)
	if err != nil {
		return archive.Object{}, errors.Join(ErrInvalidEntry, err)
	}

	key := fmt.Sprintf("%s/%s/%s.json", e.Domain, e.QuarantinedAt.Format(time.DateOnly), e.RunID)
	obj, err := q.storage.Put(ctx, key, data, contentType)
	if err != nil {
		q.log.ErrorContext(ctx, "failed to quarantine payload",
			logger.Domain(e.Domain), logger.RunID(e.RunID), logger.Error(err))
		return archive.Object{}, err
	}

	q.log.WarnContext(ctx, "payload quarantined",
		logger.Domain(e.Domain),
		logger.RunID(e.RunID),
		slog.String("key", obj.Key),
	)
	return obj, nil
}
