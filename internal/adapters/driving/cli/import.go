package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/core/services"
)

var (
	importNoIndex bool
	importReplace bool
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import news resources and topics from a JSON bundle",
	Long: `Reads a JSON bundle with "newsResources" and "topics" arrays and upserts
every entity into the primary store. The index is repopulated afterwards
unless --no-index is given. With --replace, stored entities missing from the
bundle are deleted. Use "-" to read from stdin.`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationWrite: "true"},
	RunE:        runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importNoIndex, "no-index", false, "skip populating the index after import")
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "delete stored entities the bundle does not list")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}

	in := cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening bundle: %w", err)
		}
		defer f.Close()
		in = f
	}

	bundle, err := services.LoadBundle(in)
	if err != nil {
		return err
	}

	importFn := contentService.Import
	if importReplace {
		importFn = contentService.Replace
	}
	stats, err := importFn(cmd.Context(), bundle)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	cmd.Printf("Imported %d news resources and %d topics.\n", stats.NewsResources, stats.Topics)
	if stats.Removed > 0 {
		cmd.Printf("Removed %d entities.\n", stats.Removed)
	}

	if importNoIndex {
		return nil
	}
	return populate(cmd, domain.SyncTriggerImport)
}
