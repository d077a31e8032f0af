package logger

import (
	"log/slog"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err under the key "error". A nil error yields an empty Attr,
// which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Domain records the data domain being processed, e.g. "cryptocurrencies".
func Domain(name string) slog.Attr {
	return slog.String("domain", name)
}

// RunID records the pipeline run identifier. Empty ids yield an empty Attr.
func RunID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("run_id", id)
}

// RequestID records the HTTP request identifier. Empty ids yield an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Records records a record count under the key "records".
func Records(n int) slog.Attr {
	return slog.Int("records", n)
}

// Check records a quality check name under the key "check".
func Check(name string) slog.Attr {
	return slog.String("check", name)
}

// Passed records a validation verdict under the key "passed".
func Passed(ok bool) slog.Attr {
	return slog.Bool("passed", ok)
}

// Duration records d under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
