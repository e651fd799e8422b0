package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHandleListFormats(t *testing.T) {
	_, out, err := handleListFormats(context.Background(), nil, listFormatsInput{})
	if err != nil {
		t.Fatalf("handleListFormats() error = %v", err)
	}
	for _, want := range []string{"single-action", "single-library", "multi-file-bundle", "simple-query"} {
		if !strings.Contains(out.Message, want) {
			t.Errorf("output missing %q:\n%s", want, out.Message)
		}
	}
}

func TestHandleGeneratePluginValidation(t *testing.T) {
	ctx := context.Background()

	if _, _, err := handleGeneratePlugin(ctx, nil, generatePluginInput{Name: "X"}); err == nil {
		t.Error("expected error for missing format")
	}
	if _, _, err := handleGeneratePlugin(ctx, nil, generatePluginInput{Format: "single-action"}); err == nil {
		t.Error("expected error for missing name")
	}
	if _, _, err := handleGeneratePlugin(ctx, nil, generatePluginInput{Format: "nope", Name: "X"}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestHandleGeneratePlugin(t *testing.T) {
	out := t.TempDir()
	_, result, err := handleGeneratePlugin(context.Background(), nil, generatePluginInput{
		Format:    "single-action",
		Name:      "Inbox Review",
		OutputDir: out,
	})
	if err != nil {
		t.Fatalf("handleGeneratePlugin() error = %v", err)
	}
	want := filepath.Join(out, "InboxReview.omnijs")
	if !strings.Contains(result.Message, want) {
		t.Errorf("message = %q, want deployed path %q", result.Message, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("artifact missing: %v", err)
	}
}

func TestHandleValidatePlugin(t *testing.T) {
	ctx := context.Background()

	if _, _, err := handleValidatePlugin(ctx, nil, validatePluginInput{}); err == nil {
		t.Error("expected error for missing path")
	}

	dir := t.TempDir()
	bad := filepath.Join(dir, "Bad.omnijs")
	if err := os.WriteFile(bad, []byte("const x = ;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, out, err := handleValidatePlugin(ctx, nil, validatePluginInput{Path: bad})
	if err != nil {
		t.Fatalf("handleValidatePlugin() error = %v", err)
	}
	if !strings.Contains(out.Message, "failed") {
		t.Errorf("message = %q, want failure verdict", out.Message)
	}
}
