package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/contentsearch/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC.
Use --http to serve the streamable HTTP transport instead.

Tools:
  search_contents        search topics and news resources
  populate_fts           rebuild the index
  search_contents_count  count indexed records

Examples:
  # Stdio mode
  contentsearch mcp

  # HTTP mode
  contentsearch mcp --http :8080`,
	Annotations: map[string]string{annotationWrite: "true"},
	RunE:        runMCP,
}

func init() {
	mcpCmd.Flags().String("http", "", "HTTP listen address (empty = use stdio)")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString("http")
	if err != nil {
		return fmt.Errorf("getting http flag: %w", err)
	}

	ports := &mcp.Ports{
		Search:  searchService,
		Sync:    syncService,
		Content: contentService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	if addr != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
