package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/core/observe"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driven"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driving"
	"github.com/custodia-labs/contentsearch/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchContentsService = (*SearchService)(nil)

// cacheKey ties a cached result to the change feed version it was
// computed at. Any committed write makes older entries unreachable.
type cacheKey struct {
	version uint64
	query   string
}

// SearchService answers full-text queries over the shadow stores.
type SearchService struct {
	indexes    *ContentIndexes
	feed       driven.ChangeFeed
	maxResults int
	cache      *lru.Cache[cacheKey, domain.SearchResult]
}

// NewSearchService creates a search service.
// A zero CacheSize disables result caching.
func NewSearchService(
	indexes *ContentIndexes,
	feed driven.ChangeFeed,
	settings domain.SearchSettings,
) (*SearchService, error) {
	s := &SearchService{
		indexes:    indexes,
		feed:       feed,
		maxResults: settings.MaxResults,
	}
	if settings.CacheSize > 0 {
		cache, err := lru.New[cacheKey, domain.SearchResult](settings.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating search cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// SearchContents streams results for query, re-evaluating after every
// write to a primary or shadow store.
func (s *SearchService) SearchContents(ctx context.Context, query string) (<-chan domain.SearchResult, <-chan error) {
	return observe.Watch[domain.SearchResult](ctx, s.feed, s.indexes.Tables(), func(ctx context.Context) (domain.SearchResult, error) {
		return s.search(ctx, query)
	})
}

// GetSearchContentsCount streams the total number of shadow records.
func (s *SearchService) GetSearchContentsCount(ctx context.Context) (<-chan int, <-chan error) {
	return observe.Watch[int](ctx, s.feed, s.indexes.FtsTables(), s.SearchContentsCount)
}

// Search returns results for query at the current store state.
func (s *SearchService) Search(ctx context.Context, query string) (domain.SearchResult, error) {
	if s.cache == nil {
		return s.search(ctx, query)
	}

	key := cacheKey{version: s.feed.Version(), query: normalizeQuery(query)}
	if cached, ok := s.cache.Get(key); ok {
		logger.Debug("Search cache hit for %q", query)
		return cloneResult(cached), nil
	}

	result, err := s.search(ctx, query)
	if err != nil {
		return domain.SearchResult{}, err
	}
	s.cache.Add(key, cloneResult(result))
	return result, nil
}

// SearchContentsCount returns the total number of shadow records.
func (s *SearchService) SearchContentsCount(ctx context.Context) (int, error) {
	counts := make([]int, len(s.indexes.all()))
	g, gctx := errgroup.WithContext(ctx)
	for i, idx := range s.indexes.all() {
		g.Go(func() error {
			n, err := idx.count(gctx)
			if err != nil {
				return err
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	return total, nil
}

func (s *SearchService) search(ctx context.Context, query string) (domain.SearchResult, error) {
	result := domain.EmptySearchResult()
	if len(domain.ParseQuery(query)) == 0 {
		return result, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		news, err := s.indexes.news.search(gctx, query, s.maxResults)
		if err != nil {
			return err
		}
		result.NewsResources = news
		return nil
	})
	g.Go(func() error {
		topics, err := s.indexes.topics.search(gctx, query, s.maxResults)
		if err != nil {
			return err
		}
		result.Topics = topics
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.SearchResult{}, fmt.Errorf("search %q: %w", query, err)
	}
	return result, nil
}

// normalizeQuery maps equivalent queries to one cache key.
func normalizeQuery(query string) string {
	return strings.Join(domain.ParseQuery(query), " ")
}

func cloneResult(r domain.SearchResult) domain.SearchResult {
	return domain.SearchResult{
		NewsResources: slices.Clone(r.NewsResources),
		Topics:        slices.Clone(r.Topics),
	}
}
