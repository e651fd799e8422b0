package validate

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// Supplementary style pass. Everything here is warning severity and can
// never fail a run on its own.

const maxLineLength = 160

var (
	looseEqualityRE = regexp.MustCompile(`[^=!<>]==[^=]|[^=!]!=[^=]`)
	todoMarkerRE    = regexp.MustCompile(`\b(TODO|FIXME|XXX)\b`)
)

func checkLint(f SourceFile) []Diagnostic {
	if !f.IsScript() {
		return nil
	}
	var diags []Diagnostic
	warn := func(line int, msg string) {
		diags = append(diags, Diagnostic{
			Severity: SeverityWarning,
			Check:    CheckLint,
			File:     f.Path,
			Line:     line,
			Message:  msg,
		})
	}

	for i, line := range strings.Split(f.Content, "\n") {
		no := i + 1
		if looseEqualityRE.MatchString(line) {
			warn(no, "loose equality (== / !=); prefer === / !==")
		}
		if todoMarkerRE.MatchString(line) {
			warn(no, "unresolved TODO/FIXME marker")
		}
		if len(line) > maxLineLength {
			warn(no, fmt.Sprintf("line exceeds %d characters", maxLineLength))
		}
		if trimmed := strings.TrimRight(line, "\r"); trimmed != strings.TrimRight(trimmed, " \t") {
			warn(no, "trailing whitespace")
		}
	}
	if f.Content != "" && !strings.HasSuffix(f.Content, "\n") {
		warn(0, "file does not end with a newline")
	}
	return diags
}

// developmentFilePatterns matches files that must never ship inside a bundle:
// editor droppings, build inputs, and source-language files the host cannot
// load.
var developmentFilePatterns = []string{
	".DS_Store", "*.ts", "*.map", "*.log", "*.swp",
	"package.json", "package-lock.json", "tsconfig.json",
}

var developmentDirPrefixes = []string{"node_modules/", ".git/", ".svn/"}

// checkDevelopmentFiles reports development-only files found in a deployed
// bundle's file set.
func checkDevelopmentFiles(files []SourceFile) []Diagnostic {
	var diags []Diagnostic
	for _, f := range files {
		if f.Path == ManifestName {
			continue
		}
		bad := false
		for _, prefix := range developmentDirPrefixes {
			if strings.HasPrefix(f.Path, prefix) || strings.Contains(f.Path, "/"+prefix) {
				bad = true
				break
			}
		}
		if !bad {
			base := path.Base(f.Path)
			for _, pat := range developmentFilePatterns {
				if ok, _ := path.Match(pat, base); ok {
					bad = true
					break
				}
			}
		}
		if bad {
			diags = append(diags, Diagnostic{
				Severity: SeverityError,
				Check:    CheckStructure,
				File:     f.Path,
				Message:  "development-only file must not ship inside a bundle",
			})
		}
	}
	return diags
}
