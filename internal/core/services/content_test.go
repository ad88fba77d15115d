package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/testutil"
)

func TestContentService_Import(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	stats, err := env.content.Import(ctx, testutil.Bundle())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.NewsResources)
	assert.Equal(t, 2, stats.Topics)

	news, err := env.content.ListNewsResources(ctx)
	require.NoError(t, err)
	assert.Equal(t, testutil.NewsResources(), news)

	topics, err := env.content.ListTopics(ctx)
	require.NoError(t, err)
	assert.Equal(t, testutil.Topics(), topics)
}

func TestContentService_Import_Upserts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seed(t)

	updated := testutil.Topics()[:1]
	updated[0].Name = "Renamed"
	_, err := env.content.Import(ctx, domain.ContentBundle{Topics: updated})
	require.NoError(t, err)

	topics, err := env.content.ListTopics(ctx)
	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, "Renamed", topics[0].Name)
}

func TestContentService_Replace_PrunesMissing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seed(t)

	bundle := domain.ContentBundle{
		NewsResources: testutil.NewsResources()[1:3],
		Topics:        testutil.Topics()[:1],
	}
	stats, err := env.content.Replace(ctx, bundle)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.NewsResources)
	assert.Equal(t, 1, stats.Topics)
	assert.Equal(t, 4, stats.Removed)

	news, err := env.content.ListNewsResources(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, bundle.NewsResources, news)

	topics, err := env.content.ListTopics(ctx)
	require.NoError(t, err)
	assert.Equal(t, bundle.Topics, topics)
}

func TestContentService_Replace_InvalidKeepsStore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seed(t)

	_, err := env.content.Replace(ctx, domain.ContentBundle{Topics: []domain.Topic{{Name: "x"}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	news, err := env.content.ListNewsResources(ctx)
	require.NoError(t, err)
	assert.Len(t, news, 5)
}

func TestContentService_Import_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		bundle domain.ContentBundle
	}{
		{
			name:   "empty news id",
			bundle: domain.ContentBundle{NewsResources: []domain.NewsResource{{Title: "x"}}},
		},
		{
			name:   "empty topic id",
			bundle: domain.ContentBundle{Topics: []domain.Topic{{Name: "x"}}},
		},
		{
			name: "duplicate topic id",
			bundle: domain.ContentBundle{
				NewsResources: testutil.NewsResources(),
				Topics:        []domain.Topic{{ID: "1"}, {ID: "1"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			ctx := context.Background()

			_, err := env.content.Import(ctx, tt.bundle)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)

			news, err := env.content.ListNewsResources(ctx)
			require.NoError(t, err)
			assert.Empty(t, news)
		})
	}
}

func TestLoadBundle(t *testing.T) {
	input := `{
  "topics": [{"id": "2", "name": "Android Studio & Tools", "shortDescription": "Tooling"}],
  "newsResources": [{
    "id": "1",
    "title": "Android Basics with Compose",
    "content": "First units",
    "url": "https://example.com/news/1",
    "publishDate": "2022-11-01T12:00:00Z",
    "type": "Codelab",
    "topics": ["2"]
  }]
}`

	bundle, err := LoadBundle(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, bundle.Topics, 1)
	require.Len(t, bundle.NewsResources, 1)
	assert.Equal(t, "Tooling", bundle.Topics[0].ShortDescription)
	assert.Equal(t, 2022, bundle.NewsResources[0].PublishDate.Year())
	assert.Equal(t, 2, bundle.Size())
}

func TestLoadBundle_Malformed(t *testing.T) {
	_, err := LoadBundle(strings.NewReader(`{"topics": [`))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
