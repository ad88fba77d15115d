// Package cli provides the cobra command tree for contentsearch.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/contentsearch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/contentsearch/internal/adapters/driven/lock"
	"github.com/custodia-labs/contentsearch/internal/app"
	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driving"
	"github.com/custodia-labs/contentsearch/internal/core/services"
	"github.com/custodia-labs/contentsearch/internal/logger"
)

// Command annotations read by the bootstrap hook.
const (
	// annotationNoApp marks commands that never open the stores.
	annotationNoApp = "contentsearch/no-app"

	// annotationWrite marks commands that take the data directory lock.
	annotationWrite = "contentsearch/write"
)

var version = "dev"

// Persistent flags.
var (
	dataDir     string
	verbose     bool
	backendFlag string
)

// Services used by commands. Set by bootstrap or injected with SetServices.
var (
	contentService  driving.ContentService
	syncService     driving.FtsSynchronizer
	searchService   driving.SearchContentsService
	settingsService driving.SettingsService
	scheduler       driving.RefreshScheduler
	appSettings     domain.Settings

	injected bool
	cleanup  []func() error
)

// Services is the set of driving ports commands run against.
type Services struct {
	Content   driving.ContentService
	Sync      driving.FtsSynchronizer
	Search    driving.SearchContentsService
	Settings  driving.SettingsService
	Scheduler driving.RefreshScheduler
}

var rootCmd = &cobra.Command{
	Use:   "contentsearch",
	Short: "Full-text search over news resources and topics",
	Long: `contentsearch keeps a full-text index of news resources and topics in
sync with their primary store and answers prefix queries over it.

Import a JSON bundle, populate the index, then search:
  contentsearch import seed.json
  contentsearch search android`,
	SilenceUsage:       true,
	PersistentPreRunE:  bootstrap,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.contentsearch)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "index backend: sqlite, memory or bleve")
}

// Execute runs the root command. Stores are closed even when the
// command fails, which skips the post-run hook.
func Execute() error {
	err := rootCmd.Execute()
	return errors.Join(err, runCleanup())
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices injects services and skips store bootstrap.
// Passing nil restores normal bootstrap.
func SetServices(s *Services) {
	if s == nil {
		injected = false
		contentService, syncService, searchService, settingsService, scheduler = nil, nil, nil, nil, nil
		return
	}
	injected = true
	contentService = s.Content
	syncService = s.Sync
	searchService = s.Search
	settingsService = s.Settings
	scheduler = s.Scheduler
	appSettings = domain.DefaultSettings()
}

func resolveDataDir() (string, error) {
	if dataDir != "" {
		return dataDir, nil
	}
	if env := os.Getenv("CONTENTSEARCH_DATA_DIR"); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".contentsearch"), nil
}

// bootstrap loads settings and opens the stores for the running command.
func bootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if injected {
		return nil
	}

	dir, err := resolveDataDir()
	if err != nil {
		return err
	}

	cfg, err := file.NewConfigStore(dir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	settingsService = services.NewSettingsService(cfg)

	if cmd.Annotations[annotationNoApp] == "true" {
		return nil
	}

	settings, err := settingsService.Get()
	if err != nil {
		return err
	}
	if backendFlag != "" {
		settings.Index.Backend = domain.IndexBackend(backendFlag)
	}

	if cmd.Annotations[annotationWrite] == "true" {
		l := lock.NewFileLock(dir)
		if err := l.TryLock(); err != nil {
			return err
		}
		cleanup = append(cleanup, l.Unlock)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.Open(ctx, dir, settings)
	if err != nil {
		runCleanup()
		return err
	}
	cleanup = append([]func() error{a.Close}, cleanup...)

	appSettings = a.Settings
	contentService = a.Content
	syncService = a.Sync
	searchService = a.Search
	scheduler = a.Scheduler
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	return runCleanup()
}

func runCleanup() error {
	var errs []error
	for _, fn := range cleanup {
		errs = append(errs, fn())
	}
	cleanup = nil
	return errors.Join(errs...)
}

// signalContext returns the command context cancelled on interrupt.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
