package validate

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed denylist.yaml
var embeddedDenylist []byte

// Rule is one denylist entry: a previously observed bad call shape and the
// message explaining what to use instead. Matching is textual and does not
// depend on the file parsing, so the scan also covers files the syntax check
// rejected.
type Rule struct {
	Pattern string `yaml:"pattern"`
	Message string `yaml:"message"`

	re *regexp.Regexp
}

type denylistFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRules parses denylist rules from YAML and compiles their patterns.
func LoadRules(data []byte) ([]Rule, error) {
	var f denylistFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse denylist: %w", err)
	}
	for i := range f.Rules {
		r := &f.Rules[i]
		if r.Pattern == "" {
			return nil, fmt.Errorf("denylist rule #%d has no pattern", i)
		}
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("denylist rule %q: %w", r.Pattern, err)
		}
		r.re = re
	}
	return f.Rules, nil
}

// LoadRulesFile loads additional rules from a user-maintained denylist file.
func LoadRulesFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read denylist: %w", err)
	}
	return LoadRules(data)
}

// DefaultRules returns the denylist shipped with the binary.
func DefaultRules() ([]Rule, error) {
	return LoadRules(embeddedDenylist)
}

// checkAntiPatterns scans one file's raw text against the denylist. Every
// matching line produces a diagnostic, one per rule per line.
func checkAntiPatterns(rules []Rule, f SourceFile) []Diagnostic {
	if !f.IsScript() {
		return nil
	}
	var diags []Diagnostic
	for lineNo, line := range strings.Split(f.Content, "\n") {
		for _, r := range rules {
			loc := r.re.FindStringIndex(line)
			if loc == nil {
				continue
			}
			diags = append(diags, Diagnostic{
				Severity: SeverityError,
				Check:    CheckAntiPattern,
				File:     f.Path,
				Line:     lineNo + 1,
				Column:   loc[0] + 1,
				Message:  r.Message,
			})
		}
	}
	return diags
}
