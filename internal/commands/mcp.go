package commands

import (
	"github.com/spf13/cobra"

	"github.com/plugsmith/plugsmith/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the plugsmith MCP server over stdio",
	Long:  "Starts an MCP server exposing generate_plugin, validate_plugin, and list_formats as typed tool calls. Intended to be launched by an MCP client, not interactively.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcpserver.Run(cmd.Context(), Version)
	},
}
