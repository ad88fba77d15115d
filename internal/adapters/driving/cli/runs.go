package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show index population history",
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 10, "maximum number of runs to show")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	if syncService == nil {
		return errors.New("sync service not configured")
	}

	runs, err := syncService.ListRuns(cmd.Context(), runsLimit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	for i := range runs {
		printRun(cmd, &runs[i])
	}
	return nil
}

func printRun(cmd *cobra.Command, run *domain.SyncRun) {
	status := "ok"
	if !run.Succeeded() {
		status = "partial"
	}
	cmd.Printf("%s  %-9s %-7s %4d records  %v\n",
		run.StartedAt.Local().Format(time.DateTime),
		run.Trigger,
		status,
		run.Total(),
		run.Duration().Round(time.Millisecond),
	)
	for _, ct := range domain.AllContentTypes() {
		if msg, failed := run.Failures[ct]; failed {
			cmd.Printf("    %s: %s\n", ct, msg)
		}
	}
}
