package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
)

var (
	searchJSON  bool
	searchWatch bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed news resources and topics",
	Long: `Searches the full-text index. Every term must match the start of a word
in a title, content, name or description. Matching is case-insensitive and
"and", "or" and "not" are ignored.

With --watch the results are printed again whenever the index changes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVarP(&searchWatch, "watch", "w", false, "keep printing results as the index changes")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	if searchService == nil {
		return errors.New("search service not configured")
	}

	if searchWatch {
		return watchSearch(cmd, query)
	}

	result, err := searchService.Search(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	return outputSearch(cmd, result)
}

func watchSearch(cmd *cobra.Command, query string) error {
	ctx, cancel := signalContext(cmd)
	defer cancel()

	values, errs := searchService.SearchContents(ctx, query)
	redraw := isTerminal(cmd.OutOrStdout()) && !searchJSON
	for result := range values {
		if redraw {
			cmd.Print("\033[H\033[2J")
		}
		if err := outputSearch(cmd, result); err != nil {
			return err
		}
	}
	if err, ok := <-errs; ok && err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	return nil
}

func outputSearch(cmd *cobra.Command, result domain.SearchResult) error {
	if searchJSON {
		return outputSearchJSON(cmd, result)
	}
	outputSearchTable(cmd, result)
	return nil
}

func outputSearchJSON(cmd *cobra.Command, result domain.SearchResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, result domain.SearchResult) {
	if result.IsEmpty() {
		cmd.Println("No results found.")
		return
	}

	if len(result.Topics) > 0 {
		cmd.Println("Topics:")
		for i, t := range result.Topics {
			cmd.Printf("  [%d] %s\n", i+1, t.Name)
			if t.ShortDescription != "" {
				cmd.Printf("      %s\n", t.ShortDescription)
			}
		}
		cmd.Println()
	}

	if len(result.NewsResources) > 0 {
		cmd.Println("News:")
		for i, n := range result.NewsResources {
			cmd.Printf("  [%d] %s (%s)\n", i+1, n.Title, n.PublishDate.Format("2006-01-02"))
			if n.URL != "" {
				cmd.Printf("      %s\n", n.URL)
			}
		}
		cmd.Println()
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
