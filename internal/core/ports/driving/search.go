package driving

import (
	"context"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
)

// SearchContentsService answers queries across every content type.
//
// Streaming methods emit once immediately and again after every committed
// write to a store they depend on. Both channels close when ctx is done
// or after an error is sent.
type SearchContentsService interface {
	// SearchContents streams the aggregated result for query.
	SearchContents(ctx context.Context, query string) (<-chan domain.SearchResult, <-chan error)

	// GetSearchContentsCount streams the total number of shadow records.
	GetSearchContentsCount(ctx context.Context) (<-chan int, <-chan error)

	// Search returns the current aggregated result for query.
	Search(ctx context.Context, query string) (domain.SearchResult, error)

	// SearchContentsCount returns the current total number of shadow records.
	SearchContentsCount(ctx context.Context) (int, error)
}
