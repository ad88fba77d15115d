// Package app wires stores, change feed and services for one data
// directory according to the configured index backend.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/custodia-labs/contentsearch/internal/adapters/driven/invalidation"
	"github.com/custodia-labs/contentsearch/internal/adapters/driven/storage/bleveindex"
	"github.com/custodia-labs/contentsearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/contentsearch/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driven"
	"github.com/custodia-labs/contentsearch/internal/core/services"
	"github.com/custodia-labs/contentsearch/internal/logger"
)

// App holds the services for one open data directory.
type App struct {
	Settings  domain.Settings
	Feed      *invalidation.Tracker
	Content   *services.ContentService
	Sync      *services.Synchronizer
	Search    *services.SearchService
	Scheduler *services.RefreshScheduler

	closers []io.Closer
}

type stores struct {
	news     driven.NewsResourceStore
	topics   driven.TopicStore
	newsFts  driven.NewsResourceFtsStore
	topicFts driven.TopicFtsStore
	runs     driven.SyncRunStore
}

// Open builds an App over dataDir. With the bleve backend the in-memory
// index is rebuilt from the persisted primary stores before returning.
func Open(ctx context.Context, dataDir string, settings domain.Settings) (*App, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	defer logger.Timer("open %s backend", settings.Index.Backend)()

	a := &App{
		Settings: settings,
		Feed:     invalidation.NewTracker(),
	}

	st, err := a.openStores(dataDir)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	indexes := services.NewContentIndexes(st.news, st.newsFts, st.topics, st.topicFts)
	a.Content = services.NewContentService(st.news, st.topics)
	a.Sync = services.NewSynchronizer(indexes, st.runs, settings.Sync.HistoryLimit)
	a.Search, err = services.NewSearchService(indexes, a.Feed, settings.Search)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Scheduler = services.NewRefreshScheduler(settings.Refresh, a.Sync)

	if settings.Index.Backend == domain.IndexBackendBleve {
		if _, err := a.Sync.Populate(ctx, domain.SyncTriggerStartup); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("rebuilding bleve index: %w", err)
		}
	}

	return a, nil
}

func (a *App) openStores(dataDir string) (stores, error) {
	switch a.Settings.Index.Backend {
	case domain.IndexBackendMemory:
		logger.Debug("Using in-memory stores")
		return stores{
			news:     memory.NewNewsResourceStore(a.Feed),
			topics:   memory.NewTopicStore(a.Feed),
			newsFts:  memory.NewNewsResourceFtsStore(a.Feed),
			topicFts: memory.NewTopicFtsStore(a.Feed),
			runs:     memory.NewSyncRunStore(),
		}, nil

	case domain.IndexBackendSQLite, domain.IndexBackendBleve:
		db, err := sqlite.NewStore(dataDir, a.Feed)
		if err != nil {
			return stores{}, fmt.Errorf("opening store: %w", err)
		}
		a.closers = append(a.closers, db)
		logger.Debug("Opened database at %s", db.Path())

		st := stores{
			news:     db.NewsResourceStore(),
			topics:   db.TopicStore(),
			newsFts:  db.NewsResourceFtsStore(),
			topicFts: db.TopicFtsStore(),
			runs:     db.SyncRunStore(),
		}
		if a.Settings.Index.Backend == domain.IndexBackendSQLite {
			return st, nil
		}

		newsFts, err := bleveindex.NewNewsResourceFtsStore(a.Feed)
		if err != nil {
			return stores{}, fmt.Errorf("opening bleve index: %w", err)
		}
		a.closers = append(a.closers, newsFts)
		topicFts, err := bleveindex.NewTopicFtsStore(a.Feed)
		if err != nil {
			return stores{}, fmt.Errorf("opening bleve index: %w", err)
		}
		a.closers = append(a.closers, topicFts)
		st.newsFts, st.topicFts = newsFts, topicFts
		return st, nil

	default:
		return stores{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedBackend, a.Settings.Index.Backend)
	}
}

// Close stops the scheduler and releases every store.
func (a *App) Close() error {
	var errs []error
	if a.Scheduler != nil {
		errs = append(errs, a.Scheduler.Stop())
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}
