package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
)

func testRun(id string, started time.Time) *domain.SyncRun {
	return &domain.SyncRun{
		ID:         id,
		Trigger:    domain.SyncTriggerManual,
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
		Counts: map[domain.ContentType]int{
			domain.ContentTypeNewsResources: 5,
			domain.ContentTypeTopics:        2,
		},
	}
}

func TestSyncRunStore_RecordAndLast(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	runs := store.SyncRunStore()

	last, err := runs.LastRun(ctx)
	require.NoError(t, err)
	assert.Nil(t, last)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, runs.RecordRun(ctx, testRun("a", base)))
	failed := testRun("b", base.Add(time.Minute))
	failed.Failures = map[domain.ContentType]string{domain.ContentTypeTopics: "disk full"}
	require.NoError(t, runs.RecordRun(ctx, failed))

	last, err = runs.LastRun(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "b", last.ID)
	assert.False(t, last.Succeeded())
	assert.Equal(t, "disk full", last.Failures[domain.ContentTypeTopics])
	assert.Equal(t, 7, last.Total())
	assert.Equal(t, time.Second, last.Duration())
}

func TestSyncRunStore_RecordInvalid(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()

	assert.ErrorIs(t, store.SyncRunStore().RecordRun(context.Background(), nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.SyncRunStore().RecordRun(context.Background(), &domain.SyncRun{}), domain.ErrInvalidInput)
}

func TestSyncRunStore_ListAndPrune(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	runs := store.SyncRunStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, runs.RecordRun(ctx, testRun(fmt.Sprintf("run-%d", i), base.Add(time.Duration(i)*time.Minute))))
	}

	listed, err := runs.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "run-4", listed[0].ID)
	assert.Equal(t, "run-3", listed[1].ID)

	require.NoError(t, runs.PruneRuns(ctx, 3))

	listed, err = runs.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "run-2", listed[2].ID)
}
