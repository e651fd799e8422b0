package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PLUGSMITH_OUTPUT_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if want := filepath.Join(home, "plugsmith", "plugins"); cfg.OutputDir != want {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, want)
	}
	if want := filepath.Join(home, ".plugsmith"); cfg.Root != want {
		t.Errorf("Root = %q, want %q", cfg.Root, want)
	}
	if cfg.SurfacePath != "" || cfg.DenylistPath != "" {
		t.Errorf("unexpected overrides: %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PLUGSMITH_OUTPUT_DIR", "")

	root := filepath.Join(home, ".plugsmith")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "output_dir: /tmp/plugins\nsurface: /etc/surface.yaml\ndenylist: /etc/denylist.yaml\n"
	if err := os.WriteFile(filepath.Join(root, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OutputDir != "/tmp/plugins" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.SurfacePath != "/etc/surface.yaml" || cfg.DenylistPath != "/etc/denylist.yaml" {
		t.Errorf("overrides not read: %+v", cfg)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	root := filepath.Join(home, ".plugsmith")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "config.yaml"), []byte("output_dir: /from/file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PLUGSMITH_OUTPUT_DIR", "/from/env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OutputDir != "/from/env" {
		t.Errorf("OutputDir = %q, want /from/env", cfg.OutputDir)
	}
}

func TestLoadRejectsBadConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	root := filepath.Join(home, ".plugsmith")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "config.yaml"), []byte("output_dir: ["), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load() should fail on malformed config")
	}
}
