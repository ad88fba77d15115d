package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/testutil"
)

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns topics and news resources", func(t *testing.T) {
		mockSearch := &mockSearchService{
			result: domain.SearchResult{
				Topics:        testutil.Topics()[1:],
				NewsResources: testutil.NewsResources()[:2],
			},
		}
		ports := validPorts()
		ports.Search = mockSearch
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: testutil.SearchTerm})
		require.NoError(t, err)

		assert.Equal(t, testutil.SearchTerm, mockSearch.lastQuery)
		assert.Equal(t, 3, output.Count)
		require.Len(t, output.Topics, 1)
		assert.Equal(t, "2", output.Topics[0].ID)
		assert.Equal(t, "Android Studio & Tools", output.Topics[0].Name)
		require.Len(t, output.NewsResources, 2)
		assert.Equal(t, "1", output.NewsResources[0].ID)
		assert.Equal(t, "Android Basics with Compose", output.NewsResources[0].Title)
	})

	t.Run("empty result has empty slices", func(t *testing.T) {
		server, err := NewServer(validPorts())
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "nothing"})
		require.NoError(t, err)
		assert.NotNil(t, output.Topics)
		assert.NotNil(t, output.NewsResources)
		assert.Zero(t, output.Count)
	})

	t.Run("propagates storage errors", func(t *testing.T) {
		ports := validPorts()
		ports.Search = &mockSearchService{err: errors.New("disk gone")}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "x"})
		assert.EqualError(t, err, "disk gone")
	})
}

func TestServer_handlePopulate(t *testing.T) {
	ctx := context.Background()

	t.Run("reports counts", func(t *testing.T) {
		ports := validPorts()
		ports.Sync = &mockSyncService{run: &domain.SyncRun{
			ID: "run-1",
			Counts: map[domain.ContentType]int{
				domain.ContentTypeNewsResources: 5,
				domain.ContentTypeTopics:        2,
			},
		}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handlePopulate(ctx, nil, PopulateInput{})
		require.NoError(t, err)
		assert.Equal(t, "run-1", output.RunID)
		assert.Equal(t, map[string]int{"news_resources": 5, "topics": 2}, output.Counts)
		assert.Nil(t, output.Failures)
	})

	t.Run("partial failure is reported in output", func(t *testing.T) {
		cause := errors.New("locked")
		ports := validPorts()
		ports.Sync = &mockSyncService{
			run: &domain.SyncRun{
				ID:       "run-2",
				Counts:   map[domain.ContentType]int{domain.ContentTypeNewsResources: 5},
				Failures: map[domain.ContentType]string{domain.ContentTypeTopics: "locked"},
			},
			err: &domain.PartialSyncError{Failed: map[domain.ContentType]error{domain.ContentTypeTopics: cause}},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handlePopulate(ctx, nil, PopulateInput{})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"topics": "locked"}, output.Failures)
		assert.Equal(t, 5, output.Counts["news_resources"])
	})

	t.Run("other errors fail the call", func(t *testing.T) {
		ports := validPorts()
		ports.Sync = &mockSyncService{err: errors.New("closed")}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handlePopulate(ctx, nil, PopulateInput{})
		assert.Error(t, err)
	})
}

func TestServer_handleCount(t *testing.T) {
	ctx := context.Background()

	ports := validPorts()
	ports.Search = &mockSearchService{count: 7}
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, output, err := server.handleCount(ctx, nil, CountInput{})
	require.NoError(t, err)
	assert.Equal(t, 7, output.Count)
}
