package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driven"
)

// syncRunTable is announced on the change feed after run writes.
const syncRunTable = "sync_runs"

// syncRunStore implements driven.SyncRunStore.
type syncRunStore struct {
	store *Store
}

var _ driven.SyncRunStore = (*syncRunStore)(nil)

// RecordRun stores a completed run.
func (s *syncRunStore) RecordRun(ctx context.Context, run *domain.SyncRun) error {
	if run == nil || run.ID == "" {
		return domain.ErrInvalidInput
	}

	counts, err := json.Marshal(run.Counts)
	if err != nil {
		return fmt.Errorf("marshalling counts: %w", err)
	}
	failures, err := json.Marshal(run.Failures)
	if err != nil {
		return fmt.Errorf("marshalling failures: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO sync_runs (id, triggered_by, started_at, finished_at, counts, failures)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			triggered_by = excluded.triggered_by,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at,
			counts = excluded.counts,
			failures = excluded.failures
	`, run.ID, run.Trigger.String(), formatTime(run.StartedAt),
		formatNullableTime(run.FinishedAt), string(counts), string(failures))
	if err != nil {
		return fmt.Errorf("recording sync run: %w", err)
	}

	s.store.notify(syncRunTable)
	return nil
}

// ListRuns returns recent runs, most recent first.
func (s *syncRunStore) ListRuns(ctx context.Context, limit int) ([]domain.SyncRun, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, triggered_by, started_at, finished_at, counts, failures
		FROM sync_runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying sync runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.SyncRun //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanSyncRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sync runs: %w", err)
	}
	return runs, nil
}

// LastRun returns the most recent run, or nil if none exist.
func (s *syncRunStore) LastRun(ctx context.Context) (*domain.SyncRun, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, triggered_by, started_at, finished_at, counts, failures
		FROM sync_runs
		ORDER BY started_at DESC, id DESC
		LIMIT 1
	`)
	run, err := scanSyncRun(row)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return run, err
}

// PruneRuns keeps only the most recent 'keep' runs.
func (s *syncRunStore) PruneRuns(ctx context.Context, keep int) error {
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM sync_runs
		WHERE id NOT IN (
			SELECT id FROM sync_runs ORDER BY started_at DESC, id DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning sync runs: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSyncRun(row rowScanner) (*domain.SyncRun, error) {
	var run domain.SyncRun
	var trigger, startedAt, counts, failures string
	var finishedAt sql.NullString

	if err := row.Scan(&run.ID, &trigger, &startedAt, &finishedAt, &counts, &failures); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning sync run: %w", err)
	}

	run.Trigger = domain.SyncTrigger(trigger)
	run.StartedAt = parseTime(startedAt)
	run.FinishedAt = parseNullableTime(finishedAt)
	if err := json.Unmarshal([]byte(counts), &run.Counts); err != nil {
		return nil, fmt.Errorf("unmarshalling counts: %w", err)
	}
	if err := json.Unmarshal([]byte(failures), &run.Failures); err != nil {
		return nil, fmt.Errorf("unmarshalling failures: %w", err)
	}
	return &run, nil
}
