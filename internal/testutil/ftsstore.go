package testutil

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driven"
)

// RunNewsResourceFtsStoreContract checks the behaviour every news resource
// shadow store must share. newStore must return an empty store.
func RunNewsResourceFtsStoreContract(t *testing.T, newStore func(t *testing.T) driven.NewsResourceFtsStore) {
	t.Helper()
	ctx := context.Background()
	records := NewsResourceFtsRecords(4)

	t.Run("InsertAll_Accumulates", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.InsertAll(ctx, records))
		require.NoError(t, store.InsertAll(ctx, records))

		count, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 8, count)
	})

	t.Run("DeleteAllAndInsertAll_Replaces", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.InsertAll(ctx, records))
		require.NoError(t, store.InsertAll(ctx, records))

		for i := 0; i < 3; i++ {
			require.NoError(t, store.DeleteAllAndInsertAll(ctx, records))

			count, err := store.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 4, count)
		}
	})

	t.Run("DeleteAllAndInsertAll_Empty", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.InsertAll(ctx, records))

		require.NoError(t, store.DeleteAllAndInsertAll(ctx, nil))

		count, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("Match_PrefixInInsertionOrder", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.InsertAll(ctx, records))

		ids, err := store.Match(ctx, "content")
		require.NoError(t, err)
		assert.Equal(t, []string{"0", "1", "2", "3"}, ids)

		ids, err = store.Match(ctx, "TEST2")
		require.NoError(t, err)
		assert.Equal(t, []string{"2"}, ids)
	})

	t.Run("Match_AllTermsRequired", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.InsertAll(ctx, records))

		ids, err := store.Match(ctx, "test1 content1")
		require.NoError(t, err)
		assert.Equal(t, []string{"1"}, ids)

		ids, err = store.Match(ctx, "test1 content2")
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("Match_DuplicatesKept", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.InsertAll(ctx, records[:1]))
		require.NoError(t, store.InsertAll(ctx, records[:1]))

		ids, err := store.Match(ctx, "test0")
		require.NoError(t, err)
		assert.Equal(t, []string{"0", "0"}, ids)
	})

	t.Run("Match_EmptyAndMissing", func(t *testing.T) {
		store := newStore(t)

		ids, err := store.Match(ctx, "test")
		require.NoError(t, err)
		assert.Empty(t, ids)

		require.NoError(t, store.InsertAll(ctx, records))

		for _, q := range []string{"", "   ", "AND", "nothing", "est"} {
			ids, err := store.Match(ctx, q)
			require.NoError(t, err, q)
			assert.Empty(t, ids, q)
		}
	})

	t.Run("Match_IDNotIndexed", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.InsertAll(ctx, []domain.NewsResourceFts{
			{NewsResourceID: "android", Title: "t", Content: "c"},
		}))

		ids, err := store.Match(ctx, "android")
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("DeleteAllAndInsertAll_ReadersSeeWholeStore", func(t *testing.T) {
		checkReplaceIsAtomic(t, newStore(t), records, "content", []string{"0", "1", "2", "3"})
	})

	t.Run("Table", func(t *testing.T) {
		assert.Equal(t, domain.ContentTypeNewsResources.FtsTable(), newStore(t).Table())
	})
}

// RunTopicFtsStoreContract checks the behaviour every topic shadow store
// must share. newStore must return an empty store.
func RunTopicFtsStoreContract(t *testing.T, newStore func(t *testing.T) driven.TopicFtsStore) {
	t.Helper()
	ctx := context.Background()
	records := TopicFtsRecords(4)

	t.Run("InsertAll_Accumulates", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.InsertAll(ctx, records))
		require.NoError(t, store.InsertAll(ctx, records))

		count, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 8, count)
	})

	t.Run("DeleteAllAndInsertAll_Replaces", func(t *testing.T) {
		store := newStore(t)

		for i := 0; i < 3; i++ {
			require.NoError(t, store.DeleteAllAndInsertAll(ctx, records))

			count, err := store.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 4, count)
		}
	})

	t.Run("Match_AnyField", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.InsertAll(ctx, records))

		for _, q := range []string{"topic3", "short3", "long3"} {
			ids, err := store.Match(ctx, q)
			require.NoError(t, err)
			assert.Equal(t, []string{"3"}, ids, q)
		}

		ids, err := store.Match(ctx, "long")
		require.NoError(t, err)
		assert.Equal(t, []string{"0", "1", "2", "3"}, ids)
	})

	t.Run("DeleteAllAndInsertAll_ReadersSeeWholeStore", func(t *testing.T) {
		checkReplaceIsAtomic(t, newStore(t), records, "long", []string{"0", "1", "2", "3"})
	})

	t.Run("Table", func(t *testing.T) {
		assert.Equal(t, domain.ContentTypeTopics.FtsTable(), newStore(t).Table())
	})
}

// checkReplaceIsAtomic runs concurrent replaces of records while readers
// poll Count and Match. Every read must see exactly the full record set,
// never the cleared store in between or two inserts on top of each other.
func checkReplaceIsAtomic[R domain.FtsRecord](
	t *testing.T,
	store driven.FtsStore[R],
	records []R,
	query string,
	want []string,
) {
	t.Helper()
	const (
		writers  = 4
		replaces = 10
		readers  = 4
	)
	ctx := context.Background()
	require.NoError(t, store.DeleteAllAndInsertAll(ctx, records))

	done := make(chan struct{})
	var readersWG sync.WaitGroup
	for range readers {
		readersWG.Add(1)
		go func() {
			defer readersWG.Done()
			for {
				select {
				case <-done:
					return
				default:
				}

				count, err := store.Count(ctx)
				if !assert.NoError(t, err) || !assert.Equal(t, len(records), count) {
					return
				}
				ids, err := store.Match(ctx, query)
				if !assert.NoError(t, err) || !assert.Equal(t, want, ids) {
					return
				}
			}
		}()
	}

	var writersWG sync.WaitGroup
	for range writers {
		writersWG.Add(1)
		go func() {
			defer writersWG.Done()
			for range replaces {
				if !assert.NoError(t, store.DeleteAllAndInsertAll(ctx, records)) {
					return
				}
			}
		}()
	}

	writersWG.Wait()
	close(done)
	readersWG.Wait()

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(records), count)
}
