package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/dataguard/pkg/logger"
)

// wrap adapts a typed handler to net/http. bind fills R from the request;
// its errors are rendered as-is, so binders wrap them in an HTTPError.
// A nil bind leaves R zero.
func wrap[R any](log *slog.Logger, bind func(r *http.Request, req *R) error, h func(ctx context.Context, req R) Response) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req R
		resp := Response(nil)
		if bind != nil {
			if err := bind(r, &req); err != nil {
				resp = Error(err)
			}
		}
		if resp == nil {
			resp = h(r.Context(), req)
		}
		if resp == nil {
			resp = Error(errors.Join(ErrInternal, errors.New("handler returned nil response")))
		}
		if err := resp.Render(w, r); err != nil {
			log.ErrorContext(r.Context(), "failed to render response", logger.Error(err))
		}
	}
}

// accessLog logs one line per request after it completes.
func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			log.LogAttrs(r.Context(), level, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", ww.BytesWritten()),
				logger.Duration(time.Since(start)),
			)
		})
	}
}
