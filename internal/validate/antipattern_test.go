package validate

import (
	"strings"
	"testing"
)

func TestDefaultRules(t *testing.T) {
	rules, err := DefaultRules()
	if err != nil {
		t.Fatalf("DefaultRules() error = %v", err)
	}
	if len(rules) == 0 {
		t.Fatal("embedded denylist has no rules")
	}
}

func TestCheckAntiPatterns(t *testing.T) {
	rules, err := DefaultRules()
	if err != nil {
		t.Fatalf("DefaultRules() error = %v", err)
	}

	tests := []struct {
		name      string
		path      string
		content   string
		wantCount int
	}{
		{"clean", "a.js", "const tasks = flattenedTasks.filter(t => t.flagged);\n", 0},
		{"deprecated accessor", "a.js", "const tasks = document.flattenedTasks;\n", 1},
		{"window indexing", "a.js", "const w = document.windows[0];\n", 1},
		{"require call", "a.js", `const fs = require("fs");` + "\n", 1},
		{"timer builtin", "a.js", "setTimeout(run, 100);\n", 1},
		{"two on one line", "a.js", "setTimeout(() => eval(code), 1);\n", 2},
		{"repeated across lines", "a.js", "document.flattenedTasks;\ndocument.flattenedTasks;\n", 2},
		{"non-script skipped", "manifest.json", `{"x": "document.flattenedTasks"}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := checkAntiPatterns(rules, SourceFile{Path: tt.path, Content: tt.content})
			if len(diags) != tt.wantCount {
				t.Fatalf("got %d diagnostics, want %d: %v", len(diags), tt.wantCount, diags)
			}
			for _, d := range diags {
				if d.Severity != SeverityError || d.Check != CheckAntiPattern {
					t.Errorf("diagnostic = %+v, want anti-pattern error", d)
				}
				if d.Line == 0 || d.Column == 0 {
					t.Errorf("diagnostic missing position: %+v", d)
				}
			}
		})
	}
}

func TestCheckAntiPatternsCoversUnparseableFiles(t *testing.T) {
	rules, err := DefaultRules()
	if err != nil {
		t.Fatalf("DefaultRules() error = %v", err)
	}
	// Broken syntax, but the scan is textual and still fires.
	diags := checkAntiPatterns(rules, SourceFile{
		Path:    "broken.js",
		Content: "const x = ;\neval(whatever);\n",
	})
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
}

func TestLoadRulesErrors(t *testing.T) {
	if _, err := LoadRules([]byte("rules:\n  - {message: no pattern}\n")); err == nil || !strings.Contains(err.Error(), "no pattern") {
		t.Errorf("missing pattern error = %v", err)
	}
	if _, err := LoadRules([]byte("rules:\n  - {pattern: '[', message: bad}\n")); err == nil {
		t.Error("expected error for invalid regex")
	}
}
