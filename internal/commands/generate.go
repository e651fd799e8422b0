package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plugsmith/plugsmith/internal/config"
	"github.com/plugsmith/plugsmith/internal/forge"
	"github.com/plugsmith/plugsmith/internal/storage"
	"github.com/plugsmith/plugsmith/internal/terminal"
)

var generateFlags struct {
	format      string
	name        string
	identifier  string
	author      string
	description string
	template    string
	outputDir   string
	force       bool
	vars        []string
	surface     string
	denylist    string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate, validate, and deploy a plug-in",
	Long:  "Renders the selected template with the given variables, runs the full static check suite, and deploys the artifact atomically. When any check reports an error nothing is written.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		format, err := forge.ParseFormat(generateFlags.format)
		if err != nil {
			return err
		}
		extra, err := parseVars(generateFlags.vars)
		if err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		outputDir := generateFlags.outputDir
		if outputDir == "" {
			outputDir = cfg.OutputDir
		}

		v, err := buildValidator(cfg, generateFlags.surface, generateFlags.denylist)
		if err != nil {
			return err
		}

		result, err := forge.NewPipeline(v).Generate(forge.Request{
			Format:   format,
			Selector: generateFlags.template,
			Variables: forge.Variables{
				Name:        generateFlags.name,
				Identifier:  generateFlags.identifier,
				Author:      generateFlags.author,
				Description: generateFlags.description,
				Extra:       extra,
			},
			OutputDir: outputDir,
			Force:     generateFlags.force,
		})
		if err != nil {
			return err
		}

		errors, warnings := printDiagnostics(result.Diagnostics)

		history := storage.NewHistoryStore(cfg.Root)
		_ = history.Append(storage.HistoryEntry{
			Name:     generateFlags.name,
			Format:   string(format),
			Path:     result.Path,
			Success:  result.Success,
			Errors:   errors,
			Warnings: warnings,
		})

		if !result.Success {
			terminal.Error(fmt.Sprintf("validation failed with %d error(s); nothing was written", errors))
			return fmt.Errorf("plug-in rejected")
		}

		terminal.Success(fmt.Sprintf("deployed %s", result.Path))
		return nil
	},
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&generateFlags.format, "format", "", "plug-in format (see `plugsmith formats`)")
	f.StringVar(&generateFlags.name, "name", "", "display name of the plug-in")
	f.StringVar(&generateFlags.identifier, "identifier", "", "reverse-domain plug-in identifier (derived from name when empty)")
	f.StringVar(&generateFlags.author, "author", "", "author recorded in the plug-in metadata")
	f.StringVar(&generateFlags.description, "description", "", "description recorded in the plug-in metadata")
	f.StringVar(&generateFlags.template, "template", "", "bundle template selector (multi-file-bundle only)")
	f.StringVar(&generateFlags.outputDir, "out", "", "deployment directory (defaults to the configured output directory)")
	f.BoolVar(&generateFlags.force, "force", false, "replace an existing artifact at the destination")
	f.StringArrayVar(&generateFlags.vars, "var", nil, "additional template variable as key=value (repeatable)")
	f.StringVar(&generateFlags.surface, "surface", "", "path to an alternate interface surface description")
	f.StringVar(&generateFlags.denylist, "denylist", "", "path to an alternate anti-pattern denylist")

	_ = generateCmd.MarkFlagRequired("format")
	_ = generateCmd.MarkFlagRequired("name")
}
