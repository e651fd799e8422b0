package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plugsmith/plugsmith/internal/config"
	"github.com/plugsmith/plugsmith/internal/terminal"
)

var validateFlags struct {
	surface  string
	denylist string
}

var validateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Re-check a deployed plug-in",
	Long:  "Runs the full static check suite against a deployed plug-in file or bundle directory, including the development-file scan and the warning-only style pass. Exits non-zero when any check reports an error.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		v, err := buildValidator(cfg, validateFlags.surface, validateFlags.denylist)
		if err != nil {
			return err
		}

		res, err := v.CheckDeployed(args[0])
		if err != nil {
			return err
		}

		errors, warnings := printDiagnostics(res.Diagnostics)
		if errors > 0 {
			terminal.Error(fmt.Sprintf("%d error(s), %d warning(s)", errors, warnings))
			return fmt.Errorf("validation failed")
		}
		if warnings > 0 {
			terminal.Warning(fmt.Sprintf("passed with %d warning(s)", warnings))
			return nil
		}
		terminal.Success("all checks passed")
		return nil
	},
}

func init() {
	f := validateCmd.Flags()
	f.StringVar(&validateFlags.surface, "surface", "", "path to an alternate interface surface description")
	f.StringVar(&validateFlags.denylist, "denylist", "", "path to an alternate anti-pattern denylist")
}
