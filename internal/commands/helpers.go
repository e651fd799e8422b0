package commands

import (
	"fmt"
	"strings"

	"github.com/plugsmith/plugsmith/internal/config"
	"github.com/plugsmith/plugsmith/internal/surface"
	"github.com/plugsmith/plugsmith/internal/terminal"
	"github.com/plugsmith/plugsmith/internal/validate"
)

// buildValidator assembles a validator from the embedded surface description
// and denylist, with per-flag or per-config file overrides.
func buildValidator(cfg *config.Config, surfaceOverride, denylistOverride string) (*validate.Validator, error) {
	surfacePath := surfaceOverride
	if surfacePath == "" {
		surfacePath = cfg.SurfacePath
	}
	denylistPath := denylistOverride
	if denylistPath == "" {
		denylistPath = cfg.DenylistPath
	}

	var sur *surface.Surface
	var err error
	if surfacePath != "" {
		sur, err = surface.LoadFile(surfacePath)
	} else {
		sur, err = surface.LoadEmbedded()
	}
	if err != nil {
		return nil, err
	}

	var rules []validate.Rule
	if denylistPath != "" {
		rules, err = validate.LoadRulesFile(denylistPath)
	} else {
		rules, err = validate.DefaultRules()
	}
	if err != nil {
		return nil, err
	}

	return validate.New(sur, rules), nil
}

// printDiagnostics writes each diagnostic colored by severity and returns the
// error and warning counts.
func printDiagnostics(diags []validate.Diagnostic) (errors, warnings int) {
	for _, d := range diags {
		terminal.Diagnostic(string(d.Severity), d.String())
		switch d.Severity {
		case validate.SeverityError:
			errors++
		case validate.SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}

// parseVars splits repeated --var key=value flags into a token map.
func parseVars(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	vars := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --var %q (expected key=value)", p)
		}
		vars[key] = value
	}
	return vars, nil
}
