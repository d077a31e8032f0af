package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/dataguard/svc/snapshot"
	"github.com/dmitrymomot/dataguard/svc/store"
)

const maxLimit = 100

type limitRequest struct {
	Limit int
}

type recordsRequest struct {
	Table string
	Limit int
}

func parseLimit(r *http.Request, def int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.Join(ErrBadRequest, fmt.Errorf("limit must be a positive integer, got %q", raw))
	}
	return min(n, maxLimit), nil
}

func bindLimit(r *http.Request, req *limitRequest) (err error) {
	req.Limit, err = parseLimit(r, 10)
	return err
}

func bindRecords(r *http.Request, req *recordsRequest) (err error) {
	req.Table = chi.URLParam(r, "table")
	req.Limit, err = parseLimit(r, 5)
	return err
}

func (a *API) summary(ctx context.Context, _ struct{}) Response {
	if a.snapshots == nil {
		return Error(errors.Join(ErrServiceUnavailable, errors.New("snapshots are not configured")))
	}
	snap, err := a.snapshots.Latest(ctx)
	if errors.Is(err, snapshot.ErrNotFound) {
		return Error(errors.Join(ErrNotFound, err))
	}
	if err != nil {
		return Error(err)
	}
	return JSON(snap, nil)
}

func (a *API) history(ctx context.Context, req limitRequest) Response {
	if a.snapshots == nil {
		return Error(errors.Join(ErrServiceUnavailable, errors.New("snapshots are not configured")))
	}
	snaps, err := a.snapshots.History(ctx, req.Limit)
	if err != nil {
		return Error(err)
	}
	return JSON(snaps, map[string]any{"count": len(snaps)})
}

func (a *API) tableStats(ctx context.Context, _ struct{}) Response {
	if a.stats == nil {
		return Error(errors.Join(ErrServiceUnavailable, errors.New("store is not configured")))
	}
	stats, err := a.stats.Stats(ctx)
	if err != nil {
		return Error(errors.Join(ErrServiceUnavailable, err))
	}
	return JSON(stats, nil)
}

func (a *API) records(ctx context.Context, req recordsRequest) Response {
	if a.stats == nil {
		return Error(errors.Join(ErrServiceUnavailable, errors.New("store is not configured")))
	}
	rows, err := a.stats.Recent(ctx, req.Table, req.Limit)
	if errors.Is(err, store.ErrUnknownTable) {
		return Error(errors.Join(ErrNotFound, err))
	}
	if err != nil {
		return Error(errors.Join(ErrServiceUnavailable, err))
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	return JSON(rows, map[string]any{"table": req.Table, "count": len(rows)})
}
