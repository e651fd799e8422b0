package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the CLI configuration.
type Config struct {
	// OutputDir is where generated plug-ins are deployed.
	// Defaults to ~/plugsmith/plugins/.
	OutputDir string `yaml:"output_dir"`

	// SurfacePath optionally overrides the embedded interface surface
	// description with an on-disk YAML file.
	SurfacePath string `yaml:"surface"`

	// DenylistPath optionally overrides the embedded anti-pattern rules.
	DenylistPath string `yaml:"denylist"`

	// Root is the plugsmith state directory (~/.plugsmith/).
	// Not read from the config file.
	Root string `yaml:"-"`
}

const configFileName = "config.yaml"

// Load reads ~/.plugsmith/config.yaml if present, applies environment
// overrides, and fills in defaults. A missing config file is not an error.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	root := filepath.Join(home, ".plugsmith")
	cfg := &Config{Root: root}

	data, err := os.ReadFile(filepath.Join(root, configFileName))
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configFileName, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", configFileName, err)
	}
	cfg.Root = root

	if dir := os.Getenv("PLUGSMITH_OUTPUT_DIR"); dir != "" {
		cfg.OutputDir = dir
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = filepath.Join(home, "plugsmith", "plugins")
	}

	return cfg, nil
}
