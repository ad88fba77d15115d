package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driven"
)

const (
	// maxIDsPerQuery bounds the number of bound parameters in one IN clause.
	maxIDsPerQuery = 500

	// timeLayout is fixed width so text ordering matches time ordering.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// ==================== News Resource Store ====================

// newsResourceStore implements driven.NewsResourceStore.
type newsResourceStore struct {
	store *Store
}

var _ driven.NewsResourceStore = (*newsResourceStore)(nil)

const newsResourceColumns = "id, title, content, url, header_image_url, publish_date, type"

// Table returns the primary table name.
func (s *newsResourceStore) Table() string {
	return domain.ContentTypeNewsResources.String()
}

// GetAll returns every news resource, newest first.
func (s *newsResourceStore) GetAll(ctx context.Context) ([]domain.NewsResource, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+newsResourceColumns+" FROM news_resources ORDER BY publish_date DESC, id")
	if err != nil {
		return nil, fmt.Errorf("querying news resources: %w", err)
	}
	defer rows.Close()

	return scanNewsResources(rows)
}

// GetByIDs returns the news resources that exist for ids.
func (s *newsResourceStore) GetByIDs(ctx context.Context, ids []string) (map[string]domain.NewsResource, error) {
	out := make(map[string]domain.NewsResource, len(ids))
	err := forEachIDChunk(ids, func(chunk []string, placeholders string) error {
		//nolint:gosec // placeholders only
		rows, err := s.store.db.QueryContext(ctx,
			"SELECT "+newsResourceColumns+" FROM news_resources WHERE id IN ("+placeholders+")",
			stringArgs(chunk)...)
		if err != nil {
			return fmt.Errorf("querying news resources by id: %w", err)
		}
		defer rows.Close()

		found, err := scanNewsResources(rows)
		if err != nil {
			return err
		}
		for _, n := range found {
			out[n.ID] = n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertAll inserts or replaces news resources by id.
func (s *newsResourceStore) UpsertAll(ctx context.Context, records []domain.NewsResource) error {
	err := s.store.withTx(ctx, s.Table(), func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO news_resources (`+newsResourceColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				title = excluded.title,
				content = excluded.content,
				url = excluded.url,
				header_image_url = excluded.header_image_url,
				publish_date = excluded.publish_date,
				type = excluded.type
		`)
		if err != nil {
			return fmt.Errorf("preparing upsert: %w", err)
		}
		defer stmt.Close()

		for _, n := range records {
			if _, err := stmt.ExecContext(ctx, n.ID, n.Title, n.Content, n.URL,
				nullString(n.HeaderImageURL), formatTime(n.PublishDate), n.Type); err != nil {
				return fmt.Errorf("upserting news resource %s: %w", n.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving news resources: %w", err)
	}
	return nil
}

// DeleteByIDs removes news resources.
func (s *newsResourceStore) DeleteByIDs(ctx context.Context, ids []string) error {
	return deleteByIDs(ctx, s.store, s.Table(), ids)
}

func scanNewsResources(rows *sql.Rows) ([]domain.NewsResource, error) {
	var out []domain.NewsResource //nolint:prealloc // size unknown from query
	for rows.Next() {
		var n domain.NewsResource
		var headerImage sql.NullString
		var publishDate string
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.URL,
			&headerImage, &publishDate, &n.Type); err != nil {
			return nil, fmt.Errorf("scanning news resource: %w", err)
		}
		if headerImage.Valid {
			n.HeaderImageURL = headerImage.String
		}
		n.PublishDate = parseTime(publishDate)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating news resources: %w", err)
	}
	return out, nil
}

// ==================== Topic Store ====================

// topicStore implements driven.TopicStore.
type topicStore struct {
	store *Store
}

var _ driven.TopicStore = (*topicStore)(nil)

const topicColumns = "id, name, short_description, long_description, url, image_url"

// Table returns the primary table name.
func (s *topicStore) Table() string {
	return domain.ContentTypeTopics.String()
}

// GetAll returns every topic ordered by id.
func (s *topicStore) GetAll(ctx context.Context) ([]domain.Topic, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT "+topicColumns+" FROM topics ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying topics: %w", err)
	}
	defer rows.Close()

	return scanTopics(rows)
}

// GetByIDs returns the topics that exist for ids.
func (s *topicStore) GetByIDs(ctx context.Context, ids []string) (map[string]domain.Topic, error) {
	out := make(map[string]domain.Topic, len(ids))
	err := forEachIDChunk(ids, func(chunk []string, placeholders string) error {
		//nolint:gosec // placeholders only
		rows, err := s.store.db.QueryContext(ctx,
			"SELECT "+topicColumns+" FROM topics WHERE id IN ("+placeholders+")",
			stringArgs(chunk)...)
		if err != nil {
			return fmt.Errorf("querying topics by id: %w", err)
		}
		defer rows.Close()

		found, err := scanTopics(rows)
		if err != nil {
			return err
		}
		for _, t := range found {
			out[t.ID] = t
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertAll inserts or replaces topics by id.
func (s *topicStore) UpsertAll(ctx context.Context, records []domain.Topic) error {
	err := s.store.withTx(ctx, s.Table(), func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO topics (`+topicColumns+`)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				short_description = excluded.short_description,
				long_description = excluded.long_description,
				url = excluded.url,
				image_url = excluded.image_url
		`)
		if err != nil {
			return fmt.Errorf("preparing upsert: %w", err)
		}
		defer stmt.Close()

		for _, t := range records {
			if _, err := stmt.ExecContext(ctx, t.ID, t.Name, t.ShortDescription,
				t.LongDescription, t.URL, nullString(t.ImageURL)); err != nil {
				return fmt.Errorf("upserting topic %s: %w", t.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving topics: %w", err)
	}
	return nil
}

// DeleteByIDs removes topics.
func (s *topicStore) DeleteByIDs(ctx context.Context, ids []string) error {
	return deleteByIDs(ctx, s.store, s.Table(), ids)
}

func scanTopics(rows *sql.Rows) ([]domain.Topic, error) {
	var out []domain.Topic //nolint:prealloc // size unknown from query
	for rows.Next() {
		var t domain.Topic
		var imageURL sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &t.ShortDescription, &t.LongDescription,
			&t.URL, &imageURL); err != nil {
			return nil, fmt.Errorf("scanning topic: %w", err)
		}
		if imageURL.Valid {
			t.ImageURL = imageURL.String
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating topics: %w", err)
	}
	return out, nil
}

// ==================== Helper Functions ====================

func deleteByIDs(ctx context.Context, s *Store, table string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := s.withTx(ctx, table, func(tx *sql.Tx) error {
		return forEachIDChunk(ids, func(chunk []string, placeholders string) error {
			//nolint:gosec // table name is fixed, placeholders only
			_, err := tx.ExecContext(ctx,
				"DELETE FROM "+table+" WHERE id IN ("+placeholders+")", stringArgs(chunk)...)
			return err
		})
	})
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}
	return nil
}

// forEachIDChunk calls fn with slices of at most maxIDsPerQuery ids.
func forEachIDChunk(ids []string, fn func(chunk []string, placeholders string) error) error {
	for start := 0; start < len(ids); start += maxIDsPerQuery {
		end := min(start+maxIDsPerQuery, len(ids))
		chunk := ids[start:end]
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(chunk)), ", ")
		if err := fn(chunk, placeholders); err != nil {
			return err
		}
	}
	return nil
}

func stringArgs(values []string) []any {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}

// nullString converts empty strings to NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// formatTime stores times in UTC.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime parses a stored time, returning the zero time on failure.
func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, s); err != nil {
			return time.Time{}
		}
	}
	return t
}

// formatNullableTime converts zero times to NULL.
func formatNullableTime(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(t), Valid: true}
}

// parseNullableTime parses a nullable stored time.
func parseNullableTime(ns sql.NullString) time.Time {
	if !ns.Valid {
		return time.Time{}
	}
	return parseTime(ns.String)
}
