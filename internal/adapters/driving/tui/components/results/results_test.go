package results

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/testutil"
)

func sample() domain.SearchResult {
	return domain.SearchResult{
		Topics:        testutil.Topics()[:2],
		NewsResources: testutil.NewsResources()[:3],
	}
}

func TestList_EmptyView(t *testing.T) {
	l := NewList(nil)

	assert.Contains(t, l.View(), "No results")
}

func TestList_RendersBothSections(t *testing.T) {
	l := NewList(nil)
	l.SetDimensions(120, 40)
	l.SetResult(sample())

	view := l.View()
	assert.Contains(t, view, "Topics (2)")
	assert.Contains(t, view, "News (3)")
	assert.Contains(t, view, testutil.Topics()[0].Name)
}

func TestList_CursorSpansSections(t *testing.T) {
	l := NewList(nil)
	l.SetResult(sample())

	for range 10 {
		l.MoveDown()
	}
	assert.Equal(t, 4, l.Selected())

	for range 10 {
		l.MoveUp()
	}
	assert.Equal(t, 0, l.Selected())
}

func TestList_CursorFollowsEntity(t *testing.T) {
	l := NewList(nil)
	r := sample()
	l.SetResult(r)
	l.MoveDown()
	l.MoveDown()

	// The first topic disappears; the cursor stays on the same news item.
	l.SetResult(domain.SearchResult{Topics: r.Topics[1:], NewsResources: r.NewsResources})
	assert.Equal(t, 1, l.Selected())
}

func TestList_CursorClampedWhenShrinking(t *testing.T) {
	l := NewList(nil)
	l.SetResult(sample())
	for range 4 {
		l.MoveDown()
	}

	l.SetResult(domain.SearchResult{Topics: testutil.Topics()[:1]})
	assert.Equal(t, 0, l.Selected())

	l.SetResult(domain.EmptySearchResult())
	assert.Equal(t, 0, l.Selected())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
	assert.Equal(t, "ab", truncate("abcdefgh", 2))
}

func TestWindow(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e"}

	assert.Equal(t, lines, window(lines, 4, 0))
	assert.Equal(t, []string{"a", "b"}, window(lines, 0, 2))
	assert.Equal(t, []string{"d", "e"}, window(lines, 4, 2))
}
