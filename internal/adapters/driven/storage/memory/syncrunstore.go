package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driven"
)

// Ensure SyncRunStore implements the interface.
var _ driven.SyncRunStore = (*SyncRunStore)(nil)

// SyncRunStore is an in-memory implementation of driven.SyncRunStore.
type SyncRunStore struct {
	mu   sync.RWMutex
	runs map[string]domain.SyncRun
}

// NewSyncRunStore creates a new in-memory sync run store.
func NewSyncRunStore() *SyncRunStore {
	return &SyncRunStore{
		runs: make(map[string]domain.SyncRun),
	}
}

// RecordRun stores a run.
func (s *SyncRunStore) RecordRun(_ context.Context, run *domain.SyncRun) error {
	if run == nil || run.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = *run
	return nil
}

// ListRuns returns recent runs, most recent first.
func (s *SyncRunStore) ListRuns(_ context.Context, limit int) ([]domain.SyncRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := s.sorted()
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// LastRun returns the most recent run, or nil.
func (s *SyncRunStore) LastRun(_ context.Context) (*domain.SyncRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := s.sorted()
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// PruneRuns keeps only the most recent 'keep' runs.
func (s *SyncRunStore) PruneRuns(_ context.Context, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	runs := s.sorted()
	if keep < 0 {
		keep = 0
	}
	for i := keep; i < len(runs); i++ {
		delete(s.runs, runs[i].ID)
	}
	return nil
}

// sorted returns runs newest first. Caller must hold the lock.
func (s *SyncRunStore) sorted() []domain.SyncRun {
	runs := make([]domain.SyncRun, 0, len(s.runs))
	for _, r := range s.runs {
		runs = append(runs, r)
	}
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].StartedAt.After(runs[j].StartedAt)
		}
		return runs[i].ID > runs[j].ID
	})
	return runs
}
