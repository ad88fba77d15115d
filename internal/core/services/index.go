package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driven"
	"github.com/custodia-labs/contentsearch/internal/logger"
)

// indexer is the type-erased view of a contentIndex.
type indexer interface {
	contentType() domain.ContentType
	populate(ctx context.Context) (int, error)
	count(ctx context.Context) (int, error)
	tables() []string
}

// contentIndex pairs a primary store with its shadow store.
type contentIndex[E domain.Entity, R domain.FtsRecord] struct {
	ct       domain.ContentType
	entities driven.EntityStore[E]
	fts      driven.FtsStore[R]
	derive   func(E) R

	// mu serialises read-derive-replace for this type only.
	mu sync.Mutex
}

func (c *contentIndex[E, R]) contentType() domain.ContentType {
	return c.ct
}

func (c *contentIndex[E, R]) tables() []string {
	return []string{c.entities.Table(), c.fts.Table()}
}

func (c *contentIndex[E, R]) count(ctx context.Context) (int, error) {
	n, err := c.fts.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", c.ct, err)
	}
	return n, nil
}

// populate replaces the shadow store with records derived from a fresh
// snapshot of the primary store.
func (c *contentIndex[E, R]) populate(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer logger.Timer("populate %s", c.ct)()

	entities, err := c.entities.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", c.ct, err)
	}

	records := make([]R, len(entities))
	for i, e := range entities {
		records[i] = c.derive(e)
	}

	if err := c.fts.DeleteAllAndInsertAll(ctx, records); err != nil {
		return 0, fmt.Errorf("replacing %s index: %w", c.ct, err)
	}

	logger.Debug("Indexed %d %s", len(records), c.ct)
	return len(records), nil
}

// search resolves matches to entities in match order. Ids missing from
// the primary store are skipped. Repeated ids keep their first position.
func (c *contentIndex[E, R]) search(ctx context.Context, query string, limit int) ([]E, error) {
	ids, err := c.fts.Match(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("matching %s: %w", c.ct, err)
	}

	ordered := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ordered = append(ordered, id)
	}

	out := make([]E, 0, len(ordered))
	if len(ordered) == 0 {
		return out, nil
	}

	found, err := c.entities.GetByIDs(ctx, ordered)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", c.ct, err)
	}

	for _, id := range ordered {
		e, ok := found[id]
		if !ok {
			logger.Debug("Skipping %s %s: not in primary store", c.ct, id)
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// ContentIndexes is the registry of tracked content types.
type ContentIndexes struct {
	news   *contentIndex[domain.NewsResource, domain.NewsResourceFts]
	topics *contentIndex[domain.Topic, domain.TopicFts]
}

// NewContentIndexes wires each primary store to its shadow store.
func NewContentIndexes(
	news driven.NewsResourceStore,
	newsFts driven.NewsResourceFtsStore,
	topics driven.TopicStore,
	topicFts driven.TopicFtsStore,
) *ContentIndexes {
	return &ContentIndexes{
		news: &contentIndex[domain.NewsResource, domain.NewsResourceFts]{
			ct:       domain.ContentTypeNewsResources,
			entities: news,
			fts:      newsFts,
			derive:   domain.NewsResource.AsFts,
		},
		topics: &contentIndex[domain.Topic, domain.TopicFts]{
			ct:       domain.ContentTypeTopics,
			entities: topics,
			fts:      topicFts,
			derive:   domain.Topic.AsFts,
		},
	}
}

func (c *ContentIndexes) all() []indexer {
	return []indexer{c.news, c.topics}
}

// Tables returns every primary and shadow table name.
func (c *ContentIndexes) Tables() []string {
	var tables []string
	for _, idx := range c.all() {
		tables = append(tables, idx.tables()...)
	}
	return tables
}

// FtsTables returns the shadow table names.
func (c *ContentIndexes) FtsTables() []string {
	return []string{c.news.fts.Table(), c.topics.fts.Table()}
}
