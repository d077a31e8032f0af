package snapshot

import (
	"context"
	"time"

	"github.com/dmitrymomot/dataguard/svc/validation"
)

// Snapshot is the reporting view of the latest pipeline run.
type Snapshot struct {
	RunID         string             `json:"run_id"`
	StartedAt     time.Time          `json:"started_at"`
	FinishedAt    time.Time          `json:"finished_at"`
	OverallPassed bool               `json:"overall_passed"`
	Counters      map[string]int     `json:"counters"`
	Summary       validation.Summary `json:"summary"`
}

// Store publishes snapshots and reads them back.
type Store interface {
	Publish(ctx context.Context, s Snapshot) error
	Latest(ctx context.Context) (Snapshot, error)
	History(ctx context.Context, limit int) ([]Snapshot, error)
}
