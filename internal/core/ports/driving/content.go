package driving

import (
	"context"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
)

// ImportStats summarises an import.
type ImportStats struct {
	NewsResources int
	Topics        int

	// Removed counts entities deleted by Replace.
	Removed int
}

// ContentService manages primary store contents.
type ContentService interface {
	// Import validates and upserts every entity in the bundle.
	Import(ctx context.Context, bundle domain.ContentBundle) (ImportStats, error)

	// Replace upserts the bundle, then deletes every stored entity whose
	// id the bundle does not carry.
	Replace(ctx context.Context, bundle domain.ContentBundle) (ImportStats, error)

	// ListNewsResources returns all news resources.
	ListNewsResources(ctx context.Context) ([]domain.NewsResource, error)

	// ListTopics returns all topics.
	ListTopics(ctx context.Context) ([]domain.Topic, error)
}
