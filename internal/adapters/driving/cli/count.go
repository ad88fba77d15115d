package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/contentsearch/internal/core/observe"
)

var (
	countWait    int
	countTimeout time.Duration
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of indexed records",
	Long: `Prints the total number of records in the full-text index across all
content types. With --wait the command blocks until at least that many
records are indexed, for example while another process populates.`,
	Args: cobra.NoArgs,
	RunE: runCount,
}

func init() {
	countCmd.Flags().IntVar(&countWait, "wait", 0, "block until the count reaches this value")
	countCmd.Flags().DurationVar(&countTimeout, "timeout", time.Minute, "give up waiting after this long")
	rootCmd.AddCommand(countCmd)
}

func runCount(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	if countWait <= 0 {
		n, err := searchService.SearchContentsCount(cmd.Context())
		if err != nil {
			return fmt.Errorf("count failed: %w", err)
		}
		cmd.Println(n)
		return nil
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, countTimeout)
	defer cancelTimeout()

	values, errs := searchService.GetSearchContentsCount(ctx)
	n, err := observe.Until(ctx, values, errs, func(n int) bool { return n >= countWait })
	if err != nil {
		return fmt.Errorf("waiting for %d records: %w", countWait, err)
	}
	cmd.Println(n)
	return nil
}
