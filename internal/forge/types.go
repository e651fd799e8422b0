// Package forge turns a template and a variable set into a validated,
// deployed plug-in artifact. It owns the template catalog, the variable
// substitutor, and the gate that writes artifacts atomically, or not at all.
package forge

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/plugsmith/plugsmith/internal/validate"
)

// Format is the structural shape of a requested plug-in.
type Format string

const (
	FormatSingleAction      Format = "single-action"
	FormatSingleActionModel Format = "single-action-with-model-integration"
	FormatSingleLibrary     Format = "single-library"
	FormatMultiFileBundle   Format = "multi-file-bundle"
)

// Formats lists every supported format in a stable order.
func Formats() []Format {
	return []Format{
		FormatSingleAction,
		FormatSingleActionModel,
		FormatSingleLibrary,
		FormatMultiFileBundle,
	}
}

// ParseFormat validates a format string from the CLI or an MCP tool call.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (supported: %s)", s, joinFormats())
}

func joinFormats() string {
	var names []string
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// Extensions per deployment convention: solitary plug-ins are one file,
// bundles become a directory.
const (
	solitaryExt = ".omnijs"
	bundleExt   = ".omnifocusjs"
)

// nameRE restricts plug-in names to characters that survive literal
// substitution into the JSON metadata header and manifest.
var nameRE = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 ._-]*$`)

// Variables is the caller-supplied variable set for one generation request.
// Name is the only mandatory field.
type Variables struct {
	Name        string
	Identifier  string            // plug-in identifier; derived from Name when empty
	Author      string
	Description string
	Extra       map[string]string // additional tokens; unknown ones are ignored
}

// Validate rejects variable sets that cannot be spliced into templates.
func (v Variables) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("variable %q is required", "name")
	}
	if !nameRE.MatchString(v.Name) {
		return fmt.Errorf("name %q contains characters outside [A-Za-z0-9 ._-]", v.Name)
	}
	return nil
}

// FileBase returns the deployment filename stem: the name collapsed to
// PascalCase ("Today Tasks" → "TodayTasks").
func (v Variables) FileBase() string {
	return pascalCase(v.Name)
}

// ActionID returns the short action identifier used for bundle resources:
// the name collapsed to lowerCamel ("Today Tasks" → "todayTasks").
func (v Variables) ActionID() string {
	return lowerCamel(v.Name)
}

// PlugInID returns the plug-in identifier, deriving a reverse-domain token
// from the name when the caller supplied none.
func (v Variables) PlugInID() string {
	if v.Identifier != "" {
		return v.Identifier
	}
	return "com.plugsmith." + strings.ToLower(v.ActionID())
}

// tokens materializes the literal replacement table, defaults applied.
func (v Variables) tokens() map[string]string {
	author := v.Author
	if author == "" {
		author = "plugsmith"
	}
	description := v.Description
	if description == "" {
		description = "Generated by plugsmith."
	}

	t := map[string]string{
		"__PLUGIN_NAME__":        v.Name,
		"__PLUGIN_ID__":          v.PlugInID(),
		"__ACTION_ID__":          v.ActionID(),
		"__PLUGIN_AUTHOR__":      author,
		"__PLUGIN_DESCRIPTION__": description,
		"__PLUGIN_FILENAME__":    v.FileBase(),
	}
	for k, val := range v.Extra {
		token := "__" + strings.ToUpper(strings.ReplaceAll(k, "-", "_")) + "__"
		if _, reserved := t[token]; !reserved {
			t[token] = val
		}
	}
	return t
}

// Candidate is the ephemeral in-memory file set produced by substitution.
// It is never persisted until it has passed validation.
type Candidate struct {
	Format   Format
	Name     string
	FileBase string
	Files    []validate.SourceFile
}

// Artifact adapts the candidate for the validator.
func (c *Candidate) Artifact() validate.Artifact {
	return validate.Artifact{
		Bundle: c.Format == FormatMultiFileBundle,
		Files:  c.Files,
	}
}

// pascalCase collapses a display name to a compact PascalCase token.
func pascalCase(name string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
			if upperNext {
				r -= 32
			}
			b.WriteRune(r)
			upperNext = false
		case r >= 'A' && r <= 'Z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			upperNext = false
		default:
			upperNext = true
		}
	}
	return b.String()
}

// lowerCamel is pascalCase with the first letter lowered.
func lowerCamel(name string) string {
	p := pascalCase(name)
	if p == "" {
		return p
	}
	if p[0] >= 'A' && p[0] <= 'Z' {
		return string(p[0]+32) + p[1:]
	}
	return p
}
