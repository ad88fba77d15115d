package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driven"
)

// Ensure FtsStore implements the interfaces.
var (
	_ driven.NewsResourceFtsStore = (*FtsStore[domain.NewsResourceFts])(nil)
	_ driven.TopicFtsStore        = (*FtsStore[domain.TopicFts])(nil)
)

// FtsStore is an in-memory implementation of driven.FtsStore.
// Records are kept in insertion order and matched by token prefix.
type FtsStore[R domain.FtsRecord] struct {
	table string
	feed  driven.ChangeFeed

	mu      sync.RWMutex
	records []R
}

// NewFtsStore creates an empty shadow store. The feed may be nil.
func NewFtsStore[R domain.FtsRecord](table string, feed driven.ChangeFeed) *FtsStore[R] {
	return &FtsStore[R]{table: table, feed: feed}
}

// NewNewsResourceFtsStore creates the news resource shadow store.
func NewNewsResourceFtsStore(feed driven.ChangeFeed) *FtsStore[domain.NewsResourceFts] {
	return NewFtsStore[domain.NewsResourceFts](domain.ContentTypeNewsResources.FtsTable(), feed)
}

// NewTopicFtsStore creates the topic shadow store.
func NewTopicFtsStore(feed driven.ChangeFeed) *FtsStore[domain.TopicFts] {
	return NewFtsStore[domain.TopicFts](domain.ContentTypeTopics.FtsTable(), feed)
}

// Table returns the change feed name.
func (s *FtsStore[R]) Table() string {
	return s.table
}

// InsertAll appends records.
func (s *FtsStore[R]) InsertAll(ctx context.Context, records []R) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.records = append(s.records, records...)
	s.mu.Unlock()

	s.notify()
	return nil
}

// DeleteAllAndInsertAll swaps in a copy of records under the write lock.
func (s *FtsStore[R]) DeleteAllAndInsertAll(ctx context.Context, records []R) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fresh := make([]R, len(records))
	copy(fresh, records)

	s.mu.Lock()
	s.records = fresh
	s.mu.Unlock()

	s.notify()
	return nil
}

// Count returns the number of records.
func (s *FtsStore[R]) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// Match returns matching entity ids in insertion order.
func (s *FtsStore[R]) Match(ctx context.Context, query string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	terms := domain.ParseQuery(query)
	ids := []string{}
	if len(terms) == 0 {
		return ids, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if domain.MatchesTerms(terms, r.SearchText()...) {
			ids = append(ids, r.EntityID())
		}
	}
	return ids, nil
}

func (s *FtsStore[R]) notify() {
	if s.feed != nil {
		s.feed.Notify(s.table)
	}
}
