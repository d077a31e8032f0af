package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/dataguard/pkg/logger"
)

type loopOptions struct {
	log       *slog.Logger
	now       func() time.Time
	immediate bool
}

// LoopOption configures Loop.
type LoopOption func(*loopOptions)

// WithLogger sets the logger for run failures.
func WithLogger(l *slog.Logger) LoopOption {
	return func(o *loopOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// WithImmediate runs fn once before waiting for the first tick.
func WithImmediate() LoopOption {
	return func(o *loopOptions) {
		o.immediate = true
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) LoopOption {
	return func(o *loopOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// Loop calls fn every time s comes due until ctx is canceled.
// Runs never overlap: the next due time is computed after fn returns.
// Errors from fn are logged and do not stop the loop.
// It returns ctx.Err() on shutdown.
func Loop(ctx context.Context, s Schedule, fn func(context.Context) error, opts ...LoopOption) error {
	if s == nil || fn == nil {
		return ErrNotConfigured
	}
	o := loopOptions{log: logger.Discard(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log.With(logger.Component("schedule"), slog.String("schedule", s.String()))

	run := func() {
		start := o.now()
		if err := fn(ctx); err != nil {
			log.ErrorContext(ctx, "scheduled run failed", logger.Error(err), logger.Duration(o.now().Sub(start)))
			return
		}
		log.DebugContext(ctx, "scheduled run finished", logger.Duration(o.now().Sub(start)))
	}

	if o.immediate {
		run()
	}

	for {
		next := s.Next(o.now())
		wait := next.Sub(o.now())
		log.DebugContext(ctx, "next run scheduled", slog.Time("at", next))

		timer := time.NewTimer(max(wait, 0))
		select {
		case <-ctx.Done():
			timer.Stop()
			log.InfoContext(ctx, "schedule loop stopped")
			return ctx.Err()
		case <-timer.C:
			run()
		}
	}
}
