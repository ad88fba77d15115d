package driving

import (
	"context"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
)

// RefreshScheduler repopulates the index in the background.
type RefreshScheduler interface {
	// Start runs the scheduler loop.
	// Blocks until context is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop gracefully stops the loop and waits for a running refresh.
	Stop() error

	// Trigger requests a refresh. Requests made while one is pending coalesce.
	Trigger(trigger domain.SyncTrigger)

	// LastResult returns the outcome of the latest refresh, or nil.
	LastResult() *domain.RefreshResult
}
