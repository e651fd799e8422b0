package forge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plugsmith/plugsmith/internal/validate"
)

func solitaryCandidate() *Candidate {
	return &Candidate{
		Format:   FormatSingleAction,
		Name:     "Demo",
		FileBase: "Demo",
		Files:    []validate.SourceFile{{Path: "Demo.omnijs", Content: "const a = 1;\n"}},
	}
}

func bundleCandidate() *Candidate {
	return &Candidate{
		Format:   FormatMultiFileBundle,
		Name:     "Demo",
		FileBase: "Demo",
		Files: []validate.SourceFile{
			{Path: "manifest.json", Content: `{"identifier": "com.example.demo", "version": "1.0", "actions": [{"identifier": "demo"}]}`},
			{Path: "Resources/demo.js", Content: "const a = 1;\n"},
		},
	}
}

// dirEntries lists the visible entries of a directory, ignoring it not existing.
func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestDeploySolitary(t *testing.T) {
	out := t.TempDir()
	res, err := NewDeployer().Deploy(solitaryCandidate(), &validate.Result{}, out, false)
	if err != nil {
		t.Fatalf("Deploy() error = %v", err)
	}
	if !res.Success {
		t.Fatalf("Deploy() rejected: %v", res.Diagnostics)
	}
	want := filepath.Join(out, "Demo.omnijs")
	if res.Path != want {
		t.Errorf("Path = %q, want %q", res.Path, want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("deployed file unreadable: %v", err)
	}
	if string(data) != "const a = 1;\n" {
		t.Errorf("content = %q", data)
	}
	if got := dirEntries(t, out); len(got) != 1 {
		t.Errorf("output dir entries = %v, want only the artifact", got)
	}
}

func TestDeployBundle(t *testing.T) {
	out := t.TempDir()
	res, err := NewDeployer().Deploy(bundleCandidate(), &validate.Result{}, out, false)
	if err != nil {
		t.Fatalf("Deploy() error = %v", err)
	}
	want := filepath.Join(out, "Demo.omnifocusjs")
	if res.Path != want {
		t.Errorf("Path = %q, want %q", res.Path, want)
	}
	if _, err := os.Stat(filepath.Join(want, "Resources", "demo.js")); err != nil {
		t.Errorf("bundle resource missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(want, "manifest.json")); err != nil {
		t.Errorf("bundle manifest missing: %v", err)
	}
	info, err := os.Stat(want)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o755 {
		t.Errorf("bundle directory mode = %o, want 755", perm)
	}
}

func TestDeployGateRejectsWithoutWriting(t *testing.T) {
	out := t.TempDir()
	failing := &validate.Result{Diagnostics: []validate.Diagnostic{{
		Severity: validate.SeverityError,
		Check:    validate.CheckType,
		File:     "Demo.omnijs",
		Message:  "bad",
	}}}

	res, err := NewDeployer().Deploy(solitaryCandidate(), failing, out, false)
	if err != nil {
		t.Fatalf("Deploy() error = %v", err)
	}
	if res.Success {
		t.Fatal("gate passed a failing result")
	}
	if len(res.Diagnostics) != 1 {
		t.Errorf("Diagnostics = %v", res.Diagnostics)
	}
	if got := dirEntries(t, out); len(got) != 0 {
		t.Errorf("rejection wrote files: %v", got)
	}
}

func TestDeployMidBundleWriteFailureLeavesNothing(t *testing.T) {
	out := t.TempDir()

	d := NewDeployer()
	var writes int
	d.writeFile = func(name string, data []byte, perm os.FileMode) error {
		writes++
		if writes > 1 {
			return fmt.Errorf("disk full")
		}
		return os.WriteFile(name, data, perm)
	}

	_, err := d.Deploy(bundleCandidate(), &validate.Result{}, out, false)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("Deploy() error = %v, want disk full", err)
	}
	if got := dirEntries(t, out); len(got) != 0 {
		t.Errorf("failed deploy left entries visible: %v", got)
	}
}

func TestDeployExistingDestination(t *testing.T) {
	out := t.TempDir()
	d := NewDeployer()

	if _, err := d.Deploy(solitaryCandidate(), &validate.Result{}, out, false); err != nil {
		t.Fatal(err)
	}

	_, err := d.Deploy(solitaryCandidate(), &validate.Result{}, out, false)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("second Deploy() error = %v, want already exists", err)
	}

	// force replaces the artifact.
	cand := solitaryCandidate()
	cand.Files[0].Content = "const a = 2;\n"
	res, err := d.Deploy(cand, &validate.Result{}, out, true)
	if err != nil {
		t.Fatalf("forced Deploy() error = %v", err)
	}
	data, err := os.ReadFile(res.Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "const a = 2;\n" {
		t.Errorf("forced deploy content = %q", data)
	}
}
