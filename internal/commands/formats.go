package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/plugsmith/plugsmith/internal/forge"
	"github.com/plugsmith/plugsmith/internal/terminal"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported plug-in formats",
	Run: func(cmd *cobra.Command, args []string) {
		terminal.Header("Formats")
		for _, f := range forge.Formats() {
			if f == forge.FormatMultiFileBundle {
				terminal.Detail(string(f), "templates: "+strings.Join(forge.BundleSelectors(), ", "))
			} else {
				terminal.Detail(string(f), "")
			}
		}
	},
}
