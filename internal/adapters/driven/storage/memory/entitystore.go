package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driven"
)

// Ensure EntityStore implements the interfaces.
var (
	_ driven.NewsResourceStore = (*EntityStore[domain.NewsResource])(nil)
	_ driven.TopicStore        = (*EntityStore[domain.Topic])(nil)
)

// EntityStore is an in-memory implementation of driven.EntityStore.
type EntityStore[E domain.Entity] struct {
	table string
	less  func(a, b E) bool
	feed  driven.ChangeFeed

	mu      sync.RWMutex
	records map[string]E
}

// NewEntityStore creates a store whose GetAll order is defined by less.
// The feed may be nil.
func NewEntityStore[E domain.Entity](table string, less func(a, b E) bool, feed driven.ChangeFeed) *EntityStore[E] {
	return &EntityStore[E]{
		table:   table,
		less:    less,
		feed:    feed,
		records: make(map[string]E),
	}
}

// NewNewsResourceStore orders news resources newest first, then by id.
func NewNewsResourceStore(feed driven.ChangeFeed) *EntityStore[domain.NewsResource] {
	return NewEntityStore(domain.ContentTypeNewsResources.String(), func(a, b domain.NewsResource) bool {
		if !a.PublishDate.Equal(b.PublishDate) {
			return a.PublishDate.After(b.PublishDate)
		}
		return a.ID < b.ID
	}, feed)
}

// NewTopicStore orders topics by id.
func NewTopicStore(feed driven.ChangeFeed) *EntityStore[domain.Topic] {
	return NewEntityStore(domain.ContentTypeTopics.String(), func(a, b domain.Topic) bool {
		return a.ID < b.ID
	}, feed)
}

// Table returns the change feed name.
func (s *EntityStore[E]) Table() string {
	return s.table
}

// GetAll returns every record in store order.
func (s *EntityStore[E]) GetAll(ctx context.Context) ([]E, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]E, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return s.less(out[i], out[j]) })
	return out, nil
}

// GetByIDs returns the records that exist for ids.
func (s *EntityStore[E]) GetByIDs(ctx context.Context, ids []string) (map[string]E, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]E, len(ids))
	for _, id := range ids {
		if r, ok := s.records[id]; ok {
			out[id] = r
		}
	}
	return out, nil
}

// UpsertAll inserts or replaces records by id.
func (s *EntityStore[E]) UpsertAll(ctx context.Context, records []E) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	for _, r := range records {
		s.records[r.EntityID()] = r
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// DeleteByIDs removes records.
func (s *EntityStore[E]) DeleteByIDs(ctx context.Context, ids []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	for _, id := range ids {
		delete(s.records, id)
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

func (s *EntityStore[E]) notify() {
	if s.feed != nil {
		s.feed.Notify(s.table)
	}
}
