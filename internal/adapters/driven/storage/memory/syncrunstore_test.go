package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
)

func TestSyncRunStore_Empty(t *testing.T) {
	store := NewSyncRunStore()

	last, err := store.LastRun(context.Background())
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestSyncRunStore_RecordListPrune(t *testing.T) {
	store := NewSyncRunStore()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		require.NoError(t, store.RecordRun(ctx, &domain.SyncRun{
			ID:        fmt.Sprintf("r%d", i),
			StartedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "r3", runs[0].ID)

	require.NoError(t, store.PruneRuns(ctx, 1))

	runs, err = store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	last, err := store.LastRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, "r3", last.ID)
}

func TestSyncRunStore_RecordInvalid(t *testing.T) {
	store := NewSyncRunStore()
	assert.ErrorIs(t, store.RecordRun(context.Background(), nil), domain.ErrInvalidInput)
}
