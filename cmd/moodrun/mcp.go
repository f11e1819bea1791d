// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/moodrun/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and shares storage with the CLI.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "moodrun": {
        "command": "moodrun",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_run       Record a run (pace is derived)
  list_runs     List all runs
  delete_run    Delete a run by ID
  add_mood      Record a mood
  list_moods    List all moods
  delete_mood   Delete a mood by ID
  get_recents   Latest run and latest mood

AVAILABLE RESOURCES:

  moodrun://recents   Latest run and mood as JSON`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(svc, version)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
