package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driven"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driving"
	"github.com/custodia-labs/contentsearch/internal/logger"
)

// Ensure ContentService implements the interface.
var _ driving.ContentService = (*ContentService)(nil)

// ContentService writes and reads the primary stores.
type ContentService struct {
	news   driven.NewsResourceStore
	topics driven.TopicStore
}

// NewContentService creates a content service.
func NewContentService(news driven.NewsResourceStore, topics driven.TopicStore) *ContentService {
	return &ContentService{news: news, topics: topics}
}

// Import validates the bundle and upserts every entity.
// Nothing is written if validation fails.
func (s *ContentService) Import(ctx context.Context, bundle domain.ContentBundle) (driving.ImportStats, error) {
	if err := validateIDs(domain.ContentTypeNewsResources, bundle.NewsResources); err != nil {
		return driving.ImportStats{}, err
	}
	if err := validateIDs(domain.ContentTypeTopics, bundle.Topics); err != nil {
		return driving.ImportStats{}, err
	}

	if err := s.news.UpsertAll(ctx, bundle.NewsResources); err != nil {
		return driving.ImportStats{}, fmt.Errorf("importing news resources: %w", err)
	}
	if err := s.topics.UpsertAll(ctx, bundle.Topics); err != nil {
		return driving.ImportStats{}, fmt.Errorf("importing topics: %w", err)
	}

	logger.Info("Imported %d news resources and %d topics",
		len(bundle.NewsResources), len(bundle.Topics))

	return driving.ImportStats{
		NewsResources: len(bundle.NewsResources),
		Topics:        len(bundle.Topics),
	}, nil
}

// Replace imports the bundle and prunes entities it no longer lists.
func (s *ContentService) Replace(ctx context.Context, bundle domain.ContentBundle) (driving.ImportStats, error) {
	stats, err := s.Import(ctx, bundle)
	if err != nil {
		return stats, err
	}

	removedNews, err := pruneMissing(ctx, s.news, bundle.NewsResources)
	if err != nil {
		return stats, fmt.Errorf("pruning news resources: %w", err)
	}
	removedTopics, err := pruneMissing(ctx, s.topics, bundle.Topics)
	if err != nil {
		return stats, fmt.Errorf("pruning topics: %w", err)
	}
	stats.Removed = removedNews + removedTopics
	if stats.Removed > 0 {
		logger.Info("Removed %d entities missing from the bundle", stats.Removed)
	}
	return stats, nil
}

// ListNewsResources returns all news resources, newest first.
func (s *ContentService) ListNewsResources(ctx context.Context) ([]domain.NewsResource, error) {
	return s.news.GetAll(ctx)
}

// ListTopics returns all topics ordered by id.
func (s *ContentService) ListTopics(ctx context.Context) ([]domain.Topic, error) {
	return s.topics.GetAll(ctx)
}

func validateIDs[E domain.Entity](ct domain.ContentType, entities []E) error {
	seen := make(map[string]struct{}, len(entities))
	for i, e := range entities {
		id := e.EntityID()
		if id == "" {
			return fmt.Errorf("%w: %s[%d] has empty id", domain.ErrInvalidInput, ct, i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate %s id %q", domain.ErrInvalidInput, ct, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// pruneMissing deletes stored records whose id is not in keep.
func pruneMissing[E domain.Entity](ctx context.Context, store driven.EntityStore[E], keep []E) (int, error) {
	stored, err := store.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	wanted := make(map[string]struct{}, len(keep))
	for _, e := range keep {
		wanted[e.EntityID()] = struct{}{}
	}
	var stale []string
	for _, e := range stored {
		if _, ok := wanted[e.EntityID()]; !ok {
			stale = append(stale, e.EntityID())
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}
	if err := store.DeleteByIDs(ctx, stale); err != nil {
		return 0, err
	}
	return len(stale), nil
}

// LoadBundle decodes a JSON seed bundle.
func LoadBundle(r io.Reader) (domain.ContentBundle, error) {
	var bundle domain.ContentBundle
	dec := json.NewDecoder(r)
	if err := dec.Decode(&bundle); err != nil {
		return domain.ContentBundle{}, fmt.Errorf("%w: decoding bundle: %v", domain.ErrInvalidInput, err)
	}
	return bundle, nil
}
