package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/contentsearch/internal/adapters/driven/invalidation"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driven"
	"github.com/custodia-labs/contentsearch/internal/testutil"
)

func TestNewsResourceFtsStore_Contract(t *testing.T) {
	testutil.RunNewsResourceFtsStoreContract(t, func(*testing.T) driven.NewsResourceFtsStore {
		return NewNewsResourceFtsStore(nil)
	})
}

func TestTopicFtsStore_Contract(t *testing.T) {
	testutil.RunTopicFtsStoreContract(t, func(*testing.T) driven.TopicFtsStore {
		return NewTopicFtsStore(nil)
	})
}

func TestFtsStore_Notifies(t *testing.T) {
	feed := invalidation.NewTracker()
	store := NewTopicFtsStore(feed)

	require.NoError(t, store.InsertAll(context.Background(), testutil.TopicFtsRecords(1)))
	require.NoError(t, store.DeleteAllAndInsertAll(context.Background(), nil))

	assert.Equal(t, uint64(2), feed.Version())
}

func TestFtsStore_ReplaceCopiesInput(t *testing.T) {
	store := NewNewsResourceFtsStore(nil)
	records := testutil.NewsResourceFtsRecords(2)

	require.NoError(t, store.DeleteAllAndInsertAll(context.Background(), records))
	records[0].Title = "mutated"

	ids, err := store.Match(context.Background(), "test0")
	require.NoError(t, err)
	assert.Equal(t, []string{"0"}, ids)
}

func TestFtsStore_CancelledContext(t *testing.T) {
	store := NewNewsResourceFtsStore(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.InsertAll(ctx, testutil.NewsResourceFtsRecords(1)), context.Canceled)

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
