package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/contentsearch/internal/adapters/driven/invalidation"
	"github.com/custodia-labs/contentsearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driven"
	"github.com/custodia-labs/contentsearch/internal/testutil"
)

var errStoreBroken = errors.New("store broken")

// testEnv is an in-memory wiring of every store plus the services.
type testEnv struct {
	feed     *invalidation.Tracker
	news     *memory.EntityStore[domain.NewsResource]
	topics   *memory.EntityStore[domain.Topic]
	newsFts  driven.NewsResourceFtsStore
	topicFts driven.TopicFtsStore
	runs     *memory.SyncRunStore
	indexes  *ContentIndexes
	sync     *Synchronizer
	search   *SearchService
	content  *ContentService
}

type envOption func(*testEnv)

func withTopicFts(store driven.TopicFtsStore) envOption {
	return func(e *testEnv) { e.topicFts = store }
}

func withNewsFts(store driven.NewsResourceFtsStore) envOption {
	return func(e *testEnv) { e.newsFts = store }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	feed := invalidation.NewTracker()
	env := &testEnv{
		feed:     feed,
		news:     memory.NewNewsResourceStore(feed),
		topics:   memory.NewTopicStore(feed),
		newsFts:  memory.NewNewsResourceFtsStore(feed),
		topicFts: memory.NewTopicFtsStore(feed),
		runs:     memory.NewSyncRunStore(),
	}
	for _, opt := range opts {
		opt(env)
	}

	env.indexes = NewContentIndexes(env.news, env.newsFts, env.topics, env.topicFts)
	env.sync = NewSynchronizer(env.indexes, env.runs, 50)
	search, err := NewSearchService(env.indexes, feed, domain.SearchSettings{CacheSize: 16})
	require.NoError(t, err)
	env.search = search
	env.content = NewContentService(env.news, env.topics)
	return env
}

// seed writes the canonical fixtures into the primary stores.
func (e *testEnv) seed(t *testing.T) {
	t.Helper()
	_, err := e.content.Import(context.Background(), testutil.Bundle())
	require.NoError(t, err)
}

// failingTopicFts fails every write and read.
type failingTopicFts struct {
	table string
}

func (f *failingTopicFts) InsertAll(context.Context, []domain.TopicFts) error { return errStoreBroken }
func (f *failingTopicFts) DeleteAllAndInsertAll(context.Context, []domain.TopicFts) error {
	return errStoreBroken
}
func (f *failingTopicFts) Count(context.Context) (int, error)               { return 0, errStoreBroken }
func (f *failingTopicFts) Match(context.Context, string) ([]string, error) { return nil, errStoreBroken }
func (f *failingTopicFts) Table() string                                   { return f.table }

// duplicatingNewsFts returns every match twice.
type duplicatingNewsFts struct {
	driven.NewsResourceFtsStore
}

func (d duplicatingNewsFts) Match(ctx context.Context, query string) ([]string, error) {
	ids, err := d.NewsResourceFtsStore.Match(ctx, query)
	if err != nil {
		return nil, err
	}
	return append(ids, ids...), nil
}
