package validate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/parser"
)

// SourceFile is one file of a candidate or deployed artifact, held in memory.
type SourceFile struct {
	Path    string // relative path within the artifact
	Content string
}

// IsScript reports whether the file should be parsed as ECMAScript.
func (f SourceFile) IsScript() bool {
	lower := strings.ToLower(f.Path)
	return strings.HasSuffix(lower, ".js") || strings.HasSuffix(lower, ".omnijs")
}

// IsJSON reports whether the file should be parsed as JSON.
func (f SourceFile) IsJSON() bool {
	return strings.HasSuffix(strings.ToLower(f.Path), ".json")
}

// checkSyntax parses one file and reports parse failures. For script files it
// returns the parsed program so the type check can reuse it; a nil program
// with error diagnostics means the symbol model could not be built.
func checkSyntax(f SourceFile) (*ast.Program, []Diagnostic) {
	switch {
	case f.IsScript():
		return parseScript(f)
	case f.IsJSON():
		return nil, parseJSON(f)
	default:
		// Unrecognized payloads are a structural problem, not a parse error.
		return nil, nil
	}
}

func parseScript(f SourceFile) (*ast.Program, []Diagnostic) {
	prog, err := parser.ParseFile(nil, f.Path, f.Content, 0)
	if err == nil {
		return prog, nil
	}

	var diags []Diagnostic
	if list, ok := err.(parser.ErrorList); ok {
		for _, pe := range list {
			diags = append(diags, Diagnostic{
				Severity: SeverityError,
				Check:    CheckSyntax,
				File:     f.Path,
				Line:     pe.Position.Line,
				Column:   pe.Position.Column,
				Message:  pe.Message,
			})
		}
	} else {
		diags = append(diags, Diagnostic{
			Severity: SeverityError,
			Check:    CheckSyntax,
			File:     f.Path,
			Message:  err.Error(),
		})
	}
	return nil, diags
}

func parseJSON(f SourceFile) []Diagnostic {
	var v any
	dec := json.NewDecoder(strings.NewReader(f.Content))
	if err := dec.Decode(&v); err != nil {
		line, col := 0, 0
		if serr, ok := err.(*json.SyntaxError); ok {
			line, col = lineCol(f.Content, int(serr.Offset))
		}
		return []Diagnostic{{
			Severity: SeverityError,
			Check:    CheckSyntax,
			File:     f.Path,
			Line:     line,
			Column:   col,
			Message:  fmt.Sprintf("invalid JSON: %v", err),
		}}
	}
	return nil
}

// lineCol converts a byte offset into 1-based line and column numbers.
func lineCol(src string, offset int) (int, int) {
	if offset < 0 {
		return 0, 0
	}
	if offset > len(src) {
		offset = len(src)
	}
	line := 1 + strings.Count(src[:offset], "\n")
	col := offset - strings.LastIndex(src[:offset], "\n")
	return line, col
}

// sortFiles orders files by path so check output is deterministic regardless
// of how the candidate was assembled.
func sortFiles(files []SourceFile) []SourceFile {
	sorted := make([]SourceFile, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })
	return sorted
}
