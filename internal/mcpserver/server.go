// Package mcpserver exposes the generation pipeline and validator as MCP
// tools over stdio, so editor agents can produce and check plug-ins without
// shelling out to the CLI.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Run starts the plugsmith MCP server over stdio.
// It blocks until the client disconnects or the context is cancelled.
func Run(ctx context.Context, version string) error {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "plugsmith",
			Version: version,
		},
		nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_plugin",
		Description: "Generate, validate, and deploy an automation plug-in. Requires format and name. Returns the deployed path, or the full diagnostic list when validation rejects the candidate.",
	}, handleGeneratePlugin)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_plugin",
		Description: "Re-run the full static check suite against a deployed plug-in file or bundle directory. Returns every diagnostic with file, line, and severity.",
	}, handleValidatePlugin)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_formats",
		Description: "List the supported plug-in formats and, for the bundle format, the available template selectors.",
	}, handleListFormats)

	return server.Run(ctx, &mcp.StdioTransport{})
}
