package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/core/observe"
	"github.com/custodia-labs/contentsearch/internal/testutil"
)

func TestSearchService_Search_AfterSync(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)
	ctx := context.Background()
	require.NoError(t, env.sync.PopulateFtsData(ctx))

	result, err := env.search.Search(ctx, testutil.SearchTerm)
	require.NoError(t, err)

	assert.Equal(t, []string{"2"}, result.TopicIDs())
	assert.Equal(t, []string{"1", "2"}, result.NewsResourceIDs())
	assert.Equal(t, "Android Studio & Tools", result.Topics[0].Name)
	assert.Equal(t, testutil.NewsResources()[0], result.NewsResources[0])
}

func TestSearchService_Search_BeforeSync(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	result, err := env.search.Search(context.Background(), testutil.SearchTerm)
	require.NoError(t, err)
	assert.True(t, result.IsEmpty())
	assert.NotNil(t, result.NewsResources)
	assert.NotNil(t, result.Topics)
}

func TestSearchService_Search_Queries(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)
	ctx := context.Background()
	require.NoError(t, env.sync.PopulateFtsData(ctx))

	tests := []struct {
		name   string
		query  string
		news   []string
		topics []string
	}{
		{name: "lowercase", query: "android", news: []string{"1", "2"}, topics: []string{"2"}},
		{name: "prefix", query: "andr", news: []string{"1", "2"}, topics: []string{"2"}},
		{name: "all terms required", query: "android compose", news: []string{"1"}, topics: []string{}},
		{name: "operators ignored", query: "android AND studio", news: []string{}, topics: []string{"2"}},
		{name: "no match", query: "flutter", news: []string{}, topics: []string{}},
		{name: "empty", query: "", news: []string{}, topics: []string{}},
		{name: "punctuation only", query: "&&", news: []string{}, topics: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := env.search.Search(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.news, result.NewsResourceIDs())
			assert.Equal(t, tt.topics, result.TopicIDs())
		})
	}
}

func TestSearchService_Search_MaxResults(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)
	ctx := context.Background()
	require.NoError(t, env.sync.PopulateFtsData(ctx))

	limited, err := NewSearchService(env.indexes, env.feed, domain.SearchSettings{MaxResults: 1})
	require.NoError(t, err)

	result, err := limited.Search(ctx, testutil.SearchTerm)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, result.NewsResourceIDs())
	assert.Equal(t, []string{"2"}, result.TopicIDs())
}

func TestSearchService_Search_DeduplicatesMatches(t *testing.T) {
	feedEnv := newTestEnv(t)
	env := newTestEnv(t, withNewsFts(duplicatingNewsFts{feedEnv.newsFts}))
	env.seed(t)
	ctx := context.Background()
	require.NoError(t, env.sync.PopulateFtsData(ctx))

	result, err := env.search.Search(ctx, testutil.SearchTerm)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, result.NewsResourceIDs())
}

func TestSearchService_Search_SkipsStaleMatches(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)
	ctx := context.Background()
	require.NoError(t, env.sync.PopulateFtsData(ctx))

	// Shadow store still lists "1" until the next population.
	require.NoError(t, env.news.DeleteByIDs(ctx, []string{"1"}))

	result, err := env.search.Search(ctx, testutil.SearchTerm)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, result.NewsResourceIDs())
}

func TestSearchService_Search_StorageFault(t *testing.T) {
	env := newTestEnv(t, withTopicFts(&failingTopicFts{table: "topics_fts"}))
	env.seed(t)

	_, err := env.search.Search(context.Background(), testutil.SearchTerm)
	require.Error(t, err)
	assert.ErrorIs(t, err, errStoreBroken)
}

func TestSearchService_Search_CacheInvalidatedByWrites(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)
	ctx := context.Background()
	require.NoError(t, env.sync.PopulateFtsData(ctx))

	first, err := env.search.Search(ctx, testutil.SearchTerm)
	require.NoError(t, err)
	require.Len(t, first.NewsResources, 2)

	// Mutating a returned result must not leak into the cache.
	first.NewsResources[0].Title = "changed"

	again, err := env.search.Search(ctx, "  ANDROID ")
	require.NoError(t, err)
	assert.Equal(t, "Android Basics with Compose", again.NewsResources[0].Title)

	require.NoError(t, env.news.DeleteByIDs(ctx, []string{"2"}))
	require.NoError(t, env.sync.PopulateFtsData(ctx))

	after, err := env.search.Search(ctx, testutil.SearchTerm)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, after.NewsResourceIDs())
}

func TestSearchService_SearchContents_EmitsOnSync(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	values, errs := env.search.SearchContents(ctx, testutil.SearchTerm)

	initial, err := observe.First(ctx, values, errs)
	require.NoError(t, err)
	assert.True(t, initial.IsEmpty())

	require.NoError(t, env.sync.PopulateFtsData(ctx))

	updated, err := observe.Until(ctx, values, errs, func(r domain.SearchResult) bool {
		return len(r.Topics) == 1 && len(r.NewsResources) == 2
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, updated.TopicIDs())
	assert.Equal(t, []string{"1", "2"}, updated.NewsResourceIDs())
}

func TestSearchService_SearchContents_StopsOnCancel(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())

	values, errs := env.search.SearchContents(ctx, testutil.SearchTerm)
	_, err := observe.First(ctx, values, errs)
	require.NoError(t, err)

	cancel()
	for range values {
	}
	assert.Equal(t, 0, env.feed.Subscribers())
}

func TestSearchService_SearchContents_StorageFault(t *testing.T) {
	env := newTestEnv(t, withTopicFts(&failingTopicFts{table: "topics_fts"}))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	values, errs := env.search.SearchContents(ctx, testutil.SearchTerm)
	_, err := observe.First(ctx, values, errs)
	assert.ErrorIs(t, err, errStoreBroken)
}

func TestSearchService_GetSearchContentsCount(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	values, errs := env.search.GetSearchContentsCount(ctx)

	initial, err := observe.First(ctx, values, errs)
	require.NoError(t, err)
	assert.Zero(t, initial)

	require.NoError(t, env.sync.PopulateFtsData(ctx))

	count, err := observe.Until(ctx, values, errs, func(n int) bool { return n == 7 })
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "android studio", normalizeQuery("  Android   STUDIO "))
	assert.Equal(t, "android", normalizeQuery("android AND"))
	assert.Equal(t, "", normalizeQuery("!!"))
}
