package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tristep/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can request
job and course recommendations.

By default, the server communicates over stdio using JSON-RPC. Use --port
to serve streamable HTTP instead.

Tools:
  recommend_jobs     Rank job postings against a profile
  recommend_courses  Rank online courses against a profile
  list_facets        List filter values of a corpus

Examples:
  # Stdio mode (default, for desktop assistants)
  tristep mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  tristep mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "tristep": {
        "command": "/path/to/tristep",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

// newMCPServer builds the MCP server from the injected services.
func newMCPServer() (*mcp.Server, error) {
	return mcp.NewServer(&mcp.Ports{
		Recommend: recommendService,
		Corpus:    corpusService,
		Settings:  settingsService,
	})
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := newMCPServer()
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
