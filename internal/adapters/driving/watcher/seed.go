// Package watcher re-imports a JSON seed file whenever it changes and
// asks the refresh scheduler to repopulate the index. The file is the
// source of truth: entities dropped from it are deleted.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driving"
	"github.com/custodia-labs/contentsearch/internal/core/services"
	"github.com/custodia-labs/contentsearch/internal/logger"
)

// DefaultDebounce is how long the file must be quiet before re-import.
const DefaultDebounce = 250 * time.Millisecond

// SeedWatcher imports a seed file on start and after every change.
type SeedWatcher struct {
	path      string
	content   driving.ContentService
	scheduler driving.RefreshScheduler
	debounce  time.Duration

	// OnImport, if set, is called after every import attempt.
	OnImport func(driving.ImportStats, error)
}

// NewSeedWatcher creates a watcher for path.
func NewSeedWatcher(path string, content driving.ContentService, scheduler driving.RefreshScheduler) *SeedWatcher {
	return &SeedWatcher{
		path:      path,
		content:   content,
		scheduler: scheduler,
		debounce:  DefaultDebounce,
	}
}

// SetDebounce overrides the quiet period.
func (w *SeedWatcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run imports the file once, then watches it until ctx is cancelled.
// The parent directory is watched so editors that replace the file by
// rename are still seen.
func (w *SeedWatcher) Run(ctx context.Context) error {
	abs, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolve seed path: %w", err)
	}
	w.path = abs

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w.reload(ctx)

	// Stopped timer; armed on every relevant event.
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("Seed file event: %s", event)
			timer.Reset(w.debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		case <-timer.C:
			w.reload(ctx)
		}
	}
}

func (w *SeedWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write)
}

// reload imports the file and triggers a refresh on success.
func (w *SeedWatcher) reload(ctx context.Context) {
	stats, err := w.importFile(ctx)
	if err != nil {
		logger.Warn("Seed import failed: %v", err)
	} else {
		logger.Info("Seed imported: %d news resources, %d topics, %d removed",
			stats.NewsResources, stats.Topics, stats.Removed)
		w.scheduler.Trigger(domain.SyncTriggerWatch)
	}
	if w.OnImport != nil {
		w.OnImport(stats, err)
	}
}

func (w *SeedWatcher) importFile(ctx context.Context) (driving.ImportStats, error) {
	f, err := os.Open(w.path)
	if err != nil {
		return driving.ImportStats{}, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()

	bundle, err := services.LoadBundle(f)
	if err != nil {
		return driving.ImportStats{}, err
	}
	return w.content.Replace(ctx, bundle)
}
