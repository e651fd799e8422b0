package validate

import (
	"github.com/plugsmith/plugsmith/internal/surface"
)

// Artifact is the unit of validation: an in-memory file set, either a bundle
// (manifest + resources) or one solitary plug-in file.
type Artifact struct {
	Bundle bool
	Files  []SourceFile
}

// Options selects the supplementary checks layered on top of the core run.
// The three core checks and structural validation always run.
type Options struct {
	// DevelopmentFiles scans a bundle for files that must not ship. Only
	// meaningful for artifacts loaded back from disk; fresh candidates
	// cannot contain them.
	DevelopmentFiles bool

	// Lint enables the warning-only style pass. Lint findings never fail
	// a run.
	Lint bool
}

// Validator runs the full static check suite against candidate or deployed
// artifacts. It holds only immutable state and is safe for concurrent use.
type Validator struct {
	sur   *surface.Surface
	rules []Rule
}

// New creates a validator over a surface description and a denylist.
func New(sur *surface.Surface, rules []Rule) *Validator {
	return &Validator{sur: sur, rules: rules}
}

// Check runs every stage unconditionally and returns the merged diagnostic
// list, so a single invocation surfaces every problem at once. A file that
// fails to parse is excluded from type checking (no symbol model exists),
// but the text-based anti-pattern scan still covers it.
func (v *Validator) Check(a Artifact, opts Options) *Result {
	res := &Result{}

	for _, f := range sortFiles(a.Files) {
		prog, syntaxDiags := checkSyntax(f)
		res.merge(syntaxDiags)

		if prog != nil {
			res.merge(checkTypes(v.sur, f, prog))
		}
		res.merge(checkAntiPatterns(v.rules, f))

		if !a.Bundle && f.IsScript() {
			res.merge(checkSolitaryMetadata(f))
		}
		if opts.Lint {
			res.merge(checkLint(f))
		}
	}

	if a.Bundle {
		res.merge(checkManifest(a.Files))
		if opts.DevelopmentFiles {
			res.merge(checkDevelopmentFiles(a.Files))
		}
	}

	res.sortStable()
	return res
}
