package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/contentsearch/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driven"
	"github.com/custodia-labs/contentsearch/internal/logger"
)

// dbFileName is the database file inside the data directory.
const dbFileName = "content.db"

// ExternalPollInterval is how often the store checks for commits made by
// other processes sharing the database file.
const ExternalPollInterval = 250 * time.Millisecond

// Store is a unified SQLite-based storage that provides access to
// all store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
	feed driven.ChangeFeed

	stopPoll context.CancelFunc
	pollDone chan struct{}
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.contentsearch. The feed may be nil.
func NewStore(dataDir string, feed driven.ChangeFeed) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".contentsearch")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)

	// WAL lets readers keep their snapshot while a replace transaction runs.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
		feed: feed,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	if feed != nil {
		if err := s.watchExternalWrites(ExternalPollInterval); err != nil {
			db.Close()
			return nil, err
		}
	}

	return s, nil
}

// Close stops the external write poller and closes the database.
func (s *Store) Close() error {
	if s.stopPoll != nil {
		s.stopPoll()
		<-s.pollDone
		s.stopPoll = nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// NewsResourceStore returns the news resource primary store.
func (s *Store) NewsResourceStore() driven.NewsResourceStore {
	return &newsResourceStore{store: s}
}

// TopicStore returns the topic primary store.
func (s *Store) TopicStore() driven.TopicStore {
	return &topicStore{store: s}
}

// NewsResourceFtsStore returns the news resource shadow store.
func (s *Store) NewsResourceFtsStore() driven.NewsResourceFtsStore {
	return &ftsStore[domain.NewsResourceFts]{
		store:    s,
		table:    domain.ContentTypeNewsResources.FtsTable(),
		idColumn: "news_resource_id",
		columns:  []string{"title", "content"},
	}
}

// TopicFtsStore returns the topic shadow store.
func (s *Store) TopicFtsStore() driven.TopicFtsStore {
	return &ftsStore[domain.TopicFts]{
		store:    s,
		table:    domain.ContentTypeTopics.FtsTable(),
		idColumn: "topic_id",
		columns:  []string{"name", "short_description", "long_description"},
	}
}

// SyncRunStore returns the sync run history store.
func (s *Store) SyncRunStore() driven.SyncRunStore {
	return &syncRunStore{store: s}
}

// tables lists every table whose writes are announced on the feed.
func tables() []string {
	names := []string{syncRunTable}
	for _, ct := range domain.AllContentTypes() {
		names = append(names, ct.String(), ct.FtsTable())
	}
	return names
}

// watchExternalWrites polls PRAGMA data_version on a dedicated connection.
// The value changes whenever another connection commits, including
// connections in other processes, and every table is then announced since
// the pragma does not say which ones changed.
func (s *Store) watchExternalWrites(interval time.Duration) error {
	ctx, cancel := context.WithCancel(context.Background())
	conn, err := s.db.Conn(ctx)
	if err != nil {
		cancel()
		return fmt.Errorf("opening poll connection: %w", err)
	}
	last, err := dataVersion(ctx, conn)
	if err != nil {
		cancel()
		conn.Close()
		return err
	}

	s.stopPoll = cancel
	s.pollDone = make(chan struct{})

	go func() {
		defer close(s.pollDone)
		defer conn.Close()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			v, err := dataVersion(ctx, conn)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Warn("sqlite: polling data_version: %v", err)
				continue
			}
			if v != last {
				last = v
				logger.Debug("sqlite: external commit detected")
				s.notify(tables()...)
			}
		}
	}()
	return nil
}

func dataVersion(ctx context.Context, conn *sql.Conn) (int64, error) {
	var v int64
	if err := conn.QueryRowContext(ctx, "PRAGMA data_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("reading data_version: %w", err)
	}
	return v, nil
}

// notify announces committed writes.
func (s *Store) notify(tables ...string) {
	if s.feed != nil {
		s.feed.Notify(tables...)
	}
}

// withTx runs fn in a transaction and announces table after commit.
func (s *Store) withTx(ctx context.Context, table string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	s.notify(table)
	return nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("getting schema version: %w", err)
	}
	return version, nil
}
