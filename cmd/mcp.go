package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kezou/pacer/internal/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server exposes reader state, playback control, and the document library
over stdio.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !app.config.MCP.Enabled {
			return fmt.Errorf("the MCP server is disabled in the config (mcp.enabled)")
		}

		fmt.Fprintln(cmd.ErrOrStderr(), "Starting MCP server on stdio. Press Ctrl+C to stop.")

		ctx := setupSignalHandler()

		// The MCP tools drive the same engine the TUI uses, so the run
		// loop must be live for playback control.
		app.engine.Start()
		defer app.engine.Stop()

		server := mcp.NewServer(app.reader)
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}

		return nil
	},
}
