package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/plugsmith/plugsmith/internal/config"
	"github.com/plugsmith/plugsmith/internal/forge"
	"github.com/plugsmith/plugsmith/internal/surface"
	"github.com/plugsmith/plugsmith/internal/validate"
)

type textOutput struct {
	Message string `json:"message"`
}

func newValidator() (*validate.Validator, error) {
	sur, err := surface.LoadEmbedded()
	if err != nil {
		return nil, err
	}
	rules, err := validate.DefaultRules()
	if err != nil {
		return nil, err
	}
	return validate.New(sur, rules), nil
}

func renderDiagnostics(diags []validate.Diagnostic) string {
	var b strings.Builder
	for _, d := range diags {
		b.WriteString(d.String())
		b.WriteString("\n")
	}
	return b.String()
}

// --- generate_plugin ---

type generatePluginInput struct {
	Format      string            `json:"format" jsonschema:"Plug-in format: single-action, single-action-with-model-integration, single-library, multi-file-bundle"`
	Name        string            `json:"name" jsonschema:"Display name of the plug-in (e.g. Today Tasks)"`
	Identifier  string            `json:"identifier" jsonschema:"Reverse-domain plug-in identifier; derived from the name when omitted"`
	Author      string            `json:"author" jsonschema:"Author recorded in the plug-in metadata"`
	Description string            `json:"description" jsonschema:"Description recorded in the plug-in metadata"`
	Template    string            `json:"template" jsonschema:"Bundle template selector; required for multi-file-bundle, invalid otherwise"`
	OutputDir   string            `json:"output_dir" jsonschema:"Deployment directory; defaults to the configured output directory"`
	Force       bool              `json:"force" jsonschema:"Replace an existing artifact at the destination"`
	Variables   map[string]string `json:"variables" jsonschema:"Additional template variables keyed by token name"`
}

func handleGeneratePlugin(ctx context.Context, req *mcp.CallToolRequest, input generatePluginInput) (*mcp.CallToolResult, textOutput, error) {
	if input.Format == "" {
		return nil, textOutput{}, fmt.Errorf("format is required")
	}
	if input.Name == "" {
		return nil, textOutput{}, fmt.Errorf("name is required")
	}

	format, err := forge.ParseFormat(input.Format)
	if err != nil {
		return nil, textOutput{}, err
	}

	outputDir := input.OutputDir
	if outputDir == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, textOutput{}, err
		}
		outputDir = cfg.OutputDir
	}

	v, err := newValidator()
	if err != nil {
		return nil, textOutput{}, err
	}

	result, err := forge.NewPipeline(v).Generate(forge.Request{
		Format:   format,
		Selector: input.Template,
		Variables: forge.Variables{
			Name:        input.Name,
			Identifier:  input.Identifier,
			Author:      input.Author,
			Description: input.Description,
			Extra:       input.Variables,
		},
		OutputDir: outputDir,
		Force:     input.Force,
	})
	if err != nil {
		return nil, textOutput{}, err
	}

	if !result.Success {
		return nil, textOutput{Message: "Validation rejected the candidate; nothing was written.\n" + renderDiagnostics(result.Diagnostics)}, nil
	}

	msg := fmt.Sprintf("Deployed %s", result.Path)
	if len(result.Diagnostics) > 0 {
		msg += "\n" + renderDiagnostics(result.Diagnostics)
	}
	return nil, textOutput{Message: msg}, nil
}

// --- validate_plugin ---

type validatePluginInput struct {
	Path string `json:"path" jsonschema:"Path to a deployed plug-in file or bundle directory"`
}

func handleValidatePlugin(ctx context.Context, req *mcp.CallToolRequest, input validatePluginInput) (*mcp.CallToolResult, textOutput, error) {
	if input.Path == "" {
		return nil, textOutput{}, fmt.Errorf("path is required")
	}

	v, err := newValidator()
	if err != nil {
		return nil, textOutput{}, err
	}
	res, err := v.CheckDeployed(input.Path)
	if err != nil {
		return nil, textOutput{}, err
	}

	if len(res.Diagnostics) == 0 {
		return nil, textOutput{Message: "All checks passed."}, nil
	}
	verdict := "passed"
	if !res.Pass() {
		verdict = "failed"
	}
	msg := fmt.Sprintf("Validation %s (%d error(s), %d warning(s)):\n%s",
		verdict, len(res.Errors()), len(res.Warnings()), renderDiagnostics(res.Diagnostics))
	return nil, textOutput{Message: msg}, nil
}

// --- list_formats ---

type listFormatsInput struct{}

func handleListFormats(ctx context.Context, req *mcp.CallToolRequest, input listFormatsInput) (*mcp.CallToolResult, textOutput, error) {
	var b strings.Builder
	for _, f := range forge.Formats() {
		b.WriteString(string(f))
		if f == forge.FormatMultiFileBundle {
			b.WriteString(" (templates: ")
			b.WriteString(strings.Join(forge.BundleSelectors(), ", "))
			b.WriteString(")")
		}
		b.WriteString("\n")
	}
	return nil, textOutput{Message: b.String()}, nil
}
