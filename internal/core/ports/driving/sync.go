package driving

import (
	"context"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
)

// FtsSynchronizer rebuilds every FTS shadow store from its primary store.
type FtsSynchronizer interface {
	// PopulateFtsData rebuilds all shadow stores. Repeated or concurrent
	// calls never leave duplicate records behind. When some content types
	// fail, the others are still rebuilt and the error wraps
	// domain.ErrPartialSync.
	PopulateFtsData(ctx context.Context) error

	// Populate is PopulateFtsData with an explicit trigger. It returns the
	// recorded run even when the error is non-nil.
	Populate(ctx context.Context, trigger domain.SyncTrigger) (*domain.SyncRun, error)

	// Status returns whether a population is running and the last run.
	Status(ctx context.Context) (domain.SyncStatus, error)

	// ListRuns returns recent runs, most recent first.
	ListRuns(ctx context.Context, limit int) ([]domain.SyncRun, error)
}
