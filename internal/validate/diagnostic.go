// Package validate implements the static checks that stand between a
// generated candidate and the filesystem: syntax parsing, type-level
// validation against the host API surface description, an anti-pattern
// denylist scan, and bundle manifest consistency. The checks cannot run the
// host application, so every problem they can prove statically must surface
// here: an artifact with any error-severity diagnostic is never deployed.
package validate

import (
	"fmt"
	"sort"
)

// Severity classifies a diagnostic. Only errors block deployment.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Check identifies which validation stage produced a diagnostic.
type Check string

const (
	CheckSubstitution Check = "substitution" // unresolved template placeholders
	CheckSyntax       Check = "syntax"
	CheckType         Check = "type"
	CheckAntiPattern  Check = "anti-pattern"
	CheckManifest     Check = "manifest"
	CheckStructure    Check = "structure" // bundle layout, stray development files
	CheckLint         Check = "lint"      // style pass, warning-only
)

// Diagnostic is one finding from one check against one location.
type Diagnostic struct {
	Severity Severity
	Check    Check
	File     string
	Line     int // 1-based; 0 when the finding has no position
	Column   int
	Message  string
}

func (d Diagnostic) String() string {
	loc := d.File
	if d.Line > 0 {
		loc = fmt.Sprintf("%s:%d", d.File, d.Line)
		if d.Column > 0 {
			loc = fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column)
		}
	}
	if loc == "" {
		return fmt.Sprintf("[%s] %s: %s", d.Severity, d.Check, d.Message)
	}
	return fmt.Sprintf("[%s] %s: %s: %s", d.Severity, d.Check, loc, d.Message)
}

// Result is the merged output of a full validator run.
type Result struct {
	Diagnostics []Diagnostic
}

// Pass reports whether the artifact may be deployed: true iff no diagnostic
// has error severity. Warnings never block.
func (r *Result) Pass() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Errors returns only the error-severity diagnostics.
func (r *Result) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns only the warning-severity diagnostics.
func (r *Result) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}

// add appends a diagnostic.
func (r *Result) add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

// merge appends all diagnostics from another result.
func (r *Result) merge(other []Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, other...)
}

// sortStable orders diagnostics by file, position, then check so repeated
// runs over the same candidate produce byte-identical output.
func (r *Result) sortStable() {
	sort.SliceStable(r.Diagnostics, func(i, j int) bool {
		a, b := r.Diagnostics[i], r.Diagnostics[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		if a.Check != b.Check {
			return a.Check < b.Check
		}
		return a.Message < b.Message
	})
}
