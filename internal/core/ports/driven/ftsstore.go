package driven

import (
	"context"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
)

// FtsStore holds the shadow records of one content type and answers
// full-text matches over them.
//
// Readers never observe a state that mixes the delete of one
// DeleteAllAndInsertAll call with the insert of another.
type FtsStore[R domain.FtsRecord] interface {
	// InsertAll appends records. Duplicate entity ids are allowed.
	InsertAll(ctx context.Context, records []R) error

	// DeleteAllAndInsertAll atomically replaces the contents of the store.
	DeleteAllAndInsertAll(ctx context.Context, records []R) error

	// Count returns the number of shadow records.
	Count(ctx context.Context) (int, error)

	// Match returns the entity ids whose text contains every query term as
	// a token prefix, in insertion order. An empty query matches nothing.
	Match(ctx context.Context, query string) ([]string, error)

	// Table is the change feed name notified after each committed write.
	Table() string
}

// NewsResourceFtsStore is the shadow store for news resources.
type NewsResourceFtsStore = FtsStore[domain.NewsResourceFts]

// TopicFtsStore is the shadow store for topics.
type TopicFtsStore = FtsStore[domain.TopicFts]
