package snapshot

import (
	"context"
	"sync"
)

// MemoryStore keeps snapshots in process. It is used when Redis is not configured.
type MemoryStore struct {
	mu      sync.RWMutex
	history []Snapshot
	limit   int
}

// NewMemoryStore keeps at most limit snapshots; limit <= 0 means 20.
func NewMemoryStore(limit int) *MemoryStore {
	if limit <= 0 {
		limit = defaultHistory
	}
	return &MemoryStore{limit: limit}
}

// Publish stores s as the latest snapshot.
func (m *MemoryStore) Publish(_ context.Context, s Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append([]Snapshot{s}, m.history...)
	if len(m.history) > m.limit {
		m.history = m.history[:m.limit]
	}
	return nil
}

// Latest returns the newest snapshot or ErrNotFound.
func (m *MemoryStore) Latest(_ context.Context) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.history) == 0 {
		return Snapshot{}, ErrNotFound
	}
	return m.history[0], nil
}

// History returns up to limit snapshots, newest first.
func (m *MemoryStore) History(_ context.Context, limit int) ([]Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit <= 0 || limit > len(m.history) {
		limit = len(m.history)
	}
	out := make([]Snapshot, limit)
	copy(out, m.history[:limit])
	return out, nil
}
