package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driven"
)

// ftsStore implements driven.FtsStore over one FTS5 virtual table.
// The text columns receive SearchText in order.
type ftsStore[R domain.FtsRecord] struct {
	store    *Store
	table    string
	idColumn string
	columns  []string
}

var (
	_ driven.NewsResourceFtsStore = (*ftsStore[domain.NewsResourceFts])(nil)
	_ driven.TopicFtsStore        = (*ftsStore[domain.TopicFts])(nil)
)

// Table returns the FTS table name.
func (f *ftsStore[R]) Table() string {
	return f.table
}

// InsertAll appends records.
func (f *ftsStore[R]) InsertAll(ctx context.Context, records []R) error {
	err := f.store.withTx(ctx, f.table, func(tx *sql.Tx) error {
		return f.insert(ctx, tx, records)
	})
	if err != nil {
		return fmt.Errorf("inserting into %s: %w", f.table, err)
	}
	return nil
}

// DeleteAllAndInsertAll replaces the table contents in one transaction.
func (f *ftsStore[R]) DeleteAllAndInsertAll(ctx context.Context, records []R) error {
	err := f.store.withTx(ctx, f.table, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+f.table); err != nil {
			return fmt.Errorf("clearing: %w", err)
		}
		return f.insert(ctx, tx, records)
	})
	if err != nil {
		return fmt.Errorf("replacing %s: %w", f.table, err)
	}
	return nil
}

// Count returns the number of rows.
func (f *ftsStore[R]) Count(ctx context.Context) (int, error) {
	var n int
	if err := f.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+f.table).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", f.table, err)
	}
	return n, nil
}

// Match returns matching entity ids in rowid (insertion) order.
func (f *ftsStore[R]) Match(ctx context.Context, query string) ([]string, error) {
	expr := matchExpression(query)
	if expr == "" {
		return []string{}, nil
	}

	//nolint:gosec // table and column names are fixed at construction
	rows, err := f.store.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s MATCH ? ORDER BY rowid",
		f.idColumn, f.table, f.table,
	), expr)
	if err != nil {
		return nil, fmt.Errorf("matching %s: %w", f.table, err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning %s match: %w", f.table, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s matches: %w", f.table, err)
	}
	return ids, nil
}

func (f *ftsStore[R]) insert(ctx context.Context, tx *sql.Tx, records []R) error {
	if len(records) == 0 {
		return nil
	}

	cols := append([]string{f.idColumn}, f.columns...)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")

	//nolint:gosec // table and column names are fixed at construction
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		f.table, strings.Join(cols, ", "), placeholders,
	))
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(cols))
	for _, rec := range records {
		text := rec.SearchText()
		if len(text) != len(f.columns) {
			return fmt.Errorf("%w: record %s has %d fields, want %d",
				domain.ErrInvalidInput, rec.EntityID(), len(text), len(f.columns))
		}
		args[0] = rec.EntityID()
		for i, v := range text {
			args[i+1] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting record %s: %w", rec.EntityID(), err)
		}
	}
	return nil
}

// matchExpression converts a raw query into an FTS5 expression where
// every term is a quoted prefix token and all terms are required.
func matchExpression(query string) string {
	terms := domain.ParseQuery(query)
	if len(terms) == 0 {
		return ""
	}
	parts := make([]string, len(terms))
	for i, term := range terms {
		parts[i] = `"` + strings.ReplaceAll(term, `"`, `""`) + `"*`
	}
	return strings.Join(parts, " ")
}
