package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/tristep/internal/core/domain"
	"github.com/custodia-labs/tristep/internal/core/ports/driven"
)

// Ensure SnapshotStore implements the interface.
var _ driven.CorpusSnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is an in-memory implementation of driven.CorpusSnapshotStore.
type SnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[domain.CorpusKind]domain.CorpusSnapshot
}

// NewSnapshotStore creates a new in-memory snapshot store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		snapshots: make(map[domain.CorpusKind]domain.CorpusSnapshot),
	}
}

// Save replaces the snapshot for its kind.
func (s *SnapshotStore) Save(_ context.Context, snap domain.CorpusSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snap.Kind] = snap
	return nil
}

// Get retrieves the snapshot for a kind.
func (s *SnapshotStore) Get(_ context.Context, kind domain.CorpusKind) (*domain.CorpusSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[kind]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &snap, nil
}

// List returns every snapshot ordered by kind.
func (s *SnapshotStore) List(_ context.Context) ([]domain.CorpusSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.CorpusSnapshot, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		result = append(result, snap)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Kind < result[j].Kind })
	return result, nil
}
