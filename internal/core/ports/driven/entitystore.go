package driven

import (
	"context"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
)

// EntityStore is the primary store for one content type.
type EntityStore[E domain.Entity] interface {
	// GetAll returns the full set of records in the store's natural order.
	GetAll(ctx context.Context) ([]E, error)

	// GetByIDs returns the records that exist for the given ids.
	// Missing ids are absent from the map, not an error.
	GetByIDs(ctx context.Context, ids []string) (map[string]E, error)

	// UpsertAll inserts or replaces records by id.
	UpsertAll(ctx context.Context, records []E) error

	// DeleteByIDs removes records. Unknown ids are ignored.
	DeleteByIDs(ctx context.Context, ids []string) error

	// Table is the change feed name notified after each committed write.
	Table() string
}

// NewsResourceStore is the primary store for news resources.
type NewsResourceStore = EntityStore[domain.NewsResource]

// TopicStore is the primary store for topics.
type TopicStore = EntityStore[domain.Topic]
