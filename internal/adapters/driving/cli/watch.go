package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/contentsearch/internal/adapters/driving/watcher"
	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driving"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Re-import a JSON bundle whenever it changes",
	Long: `Imports the bundle, then watches it and re-imports on every change.
Each successful import triggers a rate-limited index refresh. The file
defaults to the watch.seed_file setting. Runs until interrupted.`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{annotationWrite: "true"},
	RunE:        runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if contentService == nil || scheduler == nil {
		return errors.New("services not configured")
	}

	path := appSettings.Watch.SeedFile
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("%w: no seed file given and watch.seed_file is not set", domain.ErrInvalidInput)
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	w := watcher.NewSeedWatcher(path, contentService, scheduler)
	w.OnImport = func(stats driving.ImportStats, err error) {
		if err != nil {
			cmd.PrintErrf("Import failed: %v\n", err)
			return
		}
		cmd.Printf("Imported %d news resources and %d topics.\n", stats.NewsResources, stats.Topics)
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", path)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return scheduler.Start(gctx)
	})
	g.Go(func() error {
		return w.Run(gctx)
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
