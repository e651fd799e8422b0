package validate

import (
	"strings"
	"testing"
)

func TestCheckLint(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string // empty means clean
	}{
		{"clean", "const a = 1;\nif (a === 1) { console.log(a); }\n", ""},
		{"loose equality", "if (a == 1) { b(); }\n", "loose equality"},
		{"loose inequality", "if (a != 1) { b(); }\n", "loose equality"},
		{"strict equality ok", "if (a === 1 && b !== 2) { c(); }\n", ""},
		{"todo marker", "// TODO: finish this\n", "TODO/FIXME"},
		{"long line", "const s = \"" + strings.Repeat("x", 200) + "\";\n", "exceeds 160"},
		{"trailing whitespace", "const a = 1; \n", "trailing whitespace"},
		{"missing final newline", "const a = 1;", "does not end with a newline"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := checkLint(SourceFile{Path: "a.js", Content: tt.content})
			if tt.wantMsg == "" {
				if len(diags) != 0 {
					t.Errorf("unexpected diagnostics: %v", diags)
				}
				return
			}
			if len(diags) != 1 {
				t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
			}
			d := diags[0]
			if d.Severity != SeverityWarning || d.Check != CheckLint {
				t.Errorf("diagnostic = %+v, want lint warning", d)
			}
			if !strings.Contains(d.Message, tt.wantMsg) {
				t.Errorf("Message = %q, want substring %q", d.Message, tt.wantMsg)
			}
		})
	}
}

func TestCheckLintSkipsNonScripts(t *testing.T) {
	if diags := checkLint(SourceFile{Path: "manifest.json", Content: "x == y"}); len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
}

func TestCheckDevelopmentFiles(t *testing.T) {
	files := []SourceFile{
		{Path: "manifest.json"},
		{Path: "Resources/demo.js"},
		{Path: ".DS_Store"},
		{Path: "Resources/demo.ts"},
		{Path: "Resources/demo.js.map"},
		{Path: "node_modules/left-pad/index.js"},
		{Path: "Resources/node_modules/x/y.js"},
		{Path: "package.json"},
	}
	diags := checkDevelopmentFiles(files)
	if len(diags) != 6 {
		t.Fatalf("got %d diagnostics, want 6: %v", len(diags), diags)
	}
	flagged := map[string]bool{}
	for _, d := range diags {
		if d.Severity != SeverityError || d.Check != CheckStructure {
			t.Errorf("diagnostic = %+v, want structure error", d)
		}
		flagged[d.File] = true
	}
	if flagged["manifest.json"] || flagged["Resources/demo.js"] {
		t.Errorf("legitimate files flagged: %v", flagged)
	}
}
