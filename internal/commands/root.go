// Package commands wires the generation pipeline, validator, and MCP server
// into the plugsmith CLI.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plugsmith/plugsmith/internal/terminal"
	"github.com/plugsmith/plugsmith/internal/update"
)

// Version is set at build time.
var Version = "0.2.0"

var rootCmd = &cobra.Command{
	Use:     "plugsmith",
	Short:   "Generate and validate automation plug-ins",
	Long:    "Plugsmith generates task-automation plug-ins from built-in templates and statically validates them against the host scripting API before anything reaches disk.",
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the version and check for updates",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("plugsmith v%s\n", Version)
		if rel := update.Check(Version); rel.NeedsUpdate() {
			terminal.Warning(fmt.Sprintf("a newer release is available: v%s (%s)", rel.Latest, rel.URL))
		}
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}
