package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driven"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driving"
	"github.com/custodia-labs/contentsearch/internal/logger"
)

// Ensure Synchronizer implements the interface.
var _ driving.FtsSynchronizer = (*Synchronizer)(nil)

// Synchronizer rebuilds every shadow store from its primary store.
type Synchronizer struct {
	indexes      *ContentIndexes
	runs         driven.SyncRunStore
	historyLimit int

	running atomic.Int32

	mu      sync.RWMutex
	lastRun *domain.SyncRun
}

// NewSynchronizer creates a synchronizer. runs may be nil, in which case
// run history is kept only for the most recent run.
func NewSynchronizer(indexes *ContentIndexes, runs driven.SyncRunStore, historyLimit int) *Synchronizer {
	return &Synchronizer{
		indexes:      indexes,
		runs:         runs,
		historyLimit: historyLimit,
	}
}

// PopulateFtsData rebuilds every shadow store.
// Returns *domain.PartialSyncError when one or more types fail.
func (s *Synchronizer) PopulateFtsData(ctx context.Context) error {
	_, err := s.Populate(ctx, domain.SyncTriggerManual)
	return err
}

// Populate rebuilds every shadow store and records the run.
// Content types are rebuilt in parallel; a failure in one type does not
// stop the others.
func (s *Synchronizer) Populate(ctx context.Context, trigger domain.SyncTrigger) (*domain.SyncRun, error) {
	s.running.Add(1)
	defer s.running.Add(-1)

	logger.Section("Populating FTS data")

	run := &domain.SyncRun{
		ID:        uuid.NewString(),
		Trigger:   trigger,
		StartedAt: time.Now(),
		Counts:    make(map[domain.ContentType]int),
		Failures:  make(map[domain.ContentType]string),
	}

	var (
		mu     sync.Mutex
		failed = make(map[domain.ContentType]error)
		g      errgroup.Group
	)

	for _, idx := range s.indexes.all() {
		g.Go(func() error {
			n, err := idx.populate(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Warn("Populate %s failed: %v", idx.contentType(), err)
				failed[idx.contentType()] = err
				run.Failures[idx.contentType()] = err.Error()
				return nil
			}
			run.Counts[idx.contentType()] = n
			return nil
		})
	}
	_ = g.Wait()
	run.FinishedAt = time.Now()

	s.record(ctx, run)

	logger.Info("Populate %s finished: %d records, %d failures in %v",
		run.ID, run.Total(), len(run.Failures), run.Duration())

	if len(failed) > 0 {
		return run, &domain.PartialSyncError{Failed: failed}
	}
	return run, nil
}

// record stores the run even if ctx was cancelled mid-population.
// Runs whose trigger is not persisted only become the last run.
func (s *Synchronizer) record(ctx context.Context, run *domain.SyncRun) {
	s.mu.Lock()
	s.lastRun = run
	s.mu.Unlock()

	if s.runs == nil || !run.Trigger.Persisted() {
		return
	}

	ctx = context.WithoutCancel(ctx)
	if err := s.runs.RecordRun(ctx, run); err != nil {
		logger.Warn("Failed to record sync run %s: %v", run.ID, err)
		return
	}
	if s.historyLimit > 0 {
		if err := s.runs.PruneRuns(ctx, s.historyLimit); err != nil {
			logger.Warn("Failed to prune sync runs: %v", err)
		}
	}
}

// Status reports whether a population is running and the last run.
func (s *Synchronizer) Status(ctx context.Context) (domain.SyncStatus, error) {
	status := domain.SyncStatus{Running: s.running.Load() > 0}

	s.mu.RLock()
	last := s.lastRun
	s.mu.RUnlock()

	if last == nil && s.runs != nil {
		stored, err := s.runs.LastRun(ctx)
		if err != nil {
			return status, fmt.Errorf("loading last run: %w", err)
		}
		last = stored
	}
	status.LastRun = last
	return status, nil
}

// ListRuns returns recorded runs, newest first.
func (s *Synchronizer) ListRuns(ctx context.Context, limit int) ([]domain.SyncRun, error) {
	if s.runs == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if s.lastRun == nil {
			return []domain.SyncRun{}, nil
		}
		return []domain.SyncRun{*s.lastRun}, nil
	}
	runs, err := s.runs.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}
