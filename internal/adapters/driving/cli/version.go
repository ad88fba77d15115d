package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/contentsearch/internal/adapters/driving/mcp"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	// Overrides the root bootstrap; version needs no data directory.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("contentsearch version %s (%s/%s, mcp server %s)\n",
			version, runtime.GOOS, runtime.GOARCH, mcp.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
