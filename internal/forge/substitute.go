package forge

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/plugsmith/plugsmith/internal/validate"
)

// placeholderRE matches any substitution token. Anything still matching
// after replacement had no variable to resolve it.
var placeholderRE = regexp.MustCompile(`__[A-Z][A-Z0-9_]*__`)

// Substitute resolves a template's placeholders against a variable set,
// producing an in-memory candidate. Substitution is literal token
// replacement over both paths and contents; no code is executed. An
// unresolved placeholder is reported as a validation diagnostic, not an
// error: the caller still gets a complete picture from one run.
func Substitute(tmpl *Template, vars Variables) (*Candidate, []validate.Diagnostic, error) {
	if err := vars.Validate(); err != nil {
		return nil, nil, err
	}

	tokens := vars.tokens()
	cand := &Candidate{
		Format:   tmpl.Format,
		Name:     vars.Name,
		FileBase: vars.FileBase(),
	}

	var diags []validate.Diagnostic
	for _, tf := range tmpl.Files {
		relPath, pathMisses := applyTokens(tf.Path, tokens)
		content, contentMisses := applyTokens(tf.Content, tokens)

		for _, m := range pathMisses {
			diags = append(diags, unresolvedDiag(relPath, 0, m.token))
		}
		for _, m := range contentMisses {
			diags = append(diags, unresolvedDiag(relPath, m.line, m.token))
		}

		cand.Files = append(cand.Files, validate.SourceFile{Path: relPath, Content: content})
	}
	return cand, diags, nil
}

// tokenMiss is a placeholder in the template text that no variable resolves.
// The line number counts lines of the template, which stay aligned with
// lines of the output as long as variable values are single-line.
type tokenMiss struct {
	token string
	line  int
}

// applyTokens resolves placeholders in a single pass over the original text,
// so a variable value that happens to contain token syntax is emitted
// verbatim and never re-substituted. Placeholders with no matching variable
// are left in place and reported as misses.
func applyTokens(s string, tokens map[string]string) (string, []tokenMiss) {
	var misses []tokenMiss
	var out strings.Builder
	last := 0
	for _, loc := range placeholderRE.FindAllStringIndex(s, -1) {
		token := s[loc[0]:loc[1]]
		out.WriteString(s[last:loc[0]])
		last = loc[1]
		if value, ok := tokens[token]; ok {
			out.WriteString(value)
			continue
		}
		out.WriteString(token)
		misses = append(misses, tokenMiss{token: token, line: 1 + strings.Count(s[:loc[0]], "\n")})
	}
	out.WriteString(s[last:])
	return out.String(), misses
}

func unresolvedDiag(file string, line int, token string) validate.Diagnostic {
	return validate.Diagnostic{
		Severity: validate.SeverityError,
		Check:    validate.CheckSubstitution,
		File:     file,
		Line:     line,
		Message:  fmt.Sprintf("unresolved placeholder %s", token),
	}
}
