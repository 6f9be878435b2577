package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/membridge/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can search
and read the archive.

Tools: search, list_files, read_file.
Resources: membridge://files and membridge://documents/<path>.

By default, the server communicates over stdio using JSON-RPC.
Use --port to serve streamable HTTP instead.

Examples:
  # Stdio mode (default)
  membridge mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  membridge mcp serve --port 8081

Client configuration:
  {
    "mcpServers": {
      "membridge": {
        "command": "/path/to/membridge",
        "args": ["mcp", "serve", "--root", "/path/to/memory"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	svc, err := loadIndexed(ctx)
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Search:  svc.Search,
		Archive: svc.Archive,
	})
	if err != nil {
		return err
	}

	startWatch(ctx, svc, nil)

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		// Stdout carries JSON-RPC in stdio mode, so only HTTP mode announces itself.
		cmd.Printf("MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
