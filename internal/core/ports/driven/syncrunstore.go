package driven

import (
	"context"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
)

// SyncRunStore persists the history of index populations.
type SyncRunStore interface {
	// RecordRun stores a completed run.
	RecordRun(ctx context.Context, run *domain.SyncRun) error

	// ListRuns returns recent runs, most recent first.
	ListRuns(ctx context.Context, limit int) ([]domain.SyncRun, error)

	// LastRun returns the most recent run, or nil if none exist.
	LastRun(ctx context.Context) (*domain.SyncRun, error)

	// PruneRuns keeps only the most recent 'keep' runs.
	PruneRuns(ctx context.Context, keep int) error
}
