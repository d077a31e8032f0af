package validation

import (
	"log/slog"
	"time"
)

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.log = l
		}
	}
}

// WithMissingThreshold overrides the missing-value threshold used for tabular domains.
func WithMissingThreshold(th float64) Option {
	return func(v *Validator) {
		v.threshold = th
	}
}

// WithClock sets the time source for result timestamps.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}
