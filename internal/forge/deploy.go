package forge

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/plugsmith/plugsmith/internal/validate"
)

// DeployResult is the terminal outcome of one invocation: either a deployed
// artifact path or a rejection carrying the full diagnostic list.
type DeployResult struct {
	Success     bool
	Path        string
	Diagnostics []validate.Diagnostic
}

// Deployer finalizes validated candidates on disk. All files of an artifact
// become visible in one rename, so a crash mid-write cannot leave a partial
// bundle at the output path.
type Deployer struct {
	// writeFile is swappable so tests can fail a write partway through a
	// bundle and assert that nothing becomes visible.
	writeFile func(name string, data []byte, perm os.FileMode) error
}

// NewDeployer creates a deployer backed by the real filesystem.
func NewDeployer() *Deployer {
	return &Deployer{writeFile: os.WriteFile}
}

// Deploy applies the zero-tolerance gate and, on pass, writes the artifact
// atomically. A rejection is a normal result, not an error; errors are
// environment problems (unwritable output, existing destination).
func (d *Deployer) Deploy(cand *Candidate, res *validate.Result, outputDir string, force bool) (*DeployResult, error) {
	if !res.Pass() {
		return &DeployResult{Success: false, Diagnostics: res.Diagnostics}, nil
	}

	finalPath := filepath.Join(outputDir, cand.FileBase+extensionFor(cand.Format))

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if _, err := os.Lstat(finalPath); err == nil && !force {
		return nil, fmt.Errorf("destination %s already exists (pass force to replace)", finalPath)
	}

	stage, err := os.MkdirTemp(outputDir, ".plugsmith-stage-")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(stage)
	// MkdirTemp creates the directory 0700, but for bundles it becomes the
	// artifact itself when renamed into place.
	if err := os.Chmod(stage, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}

	for _, f := range cand.Files {
		target := filepath.Join(stage, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return nil, fmt.Errorf("failed to stage %s: %w", f.Path, err)
		}
		if err := d.writeFile(target, []byte(f.Content), 0o644); err != nil {
			return nil, fmt.Errorf("failed to stage %s: %w", f.Path, err)
		}
	}

	// Single rename makes the whole artifact visible at once.
	staged := stage
	if cand.Format != FormatMultiFileBundle {
		staged = filepath.Join(stage, filepath.FromSlash(cand.Files[0].Path))
	}
	if force {
		if err := os.RemoveAll(finalPath); err != nil {
			return nil, fmt.Errorf("failed to replace %s: %w", finalPath, err)
		}
	}
	if err := os.Rename(staged, finalPath); err != nil {
		return nil, fmt.Errorf("failed to finalize %s: %w", finalPath, err)
	}

	return &DeployResult{
		Success:     true,
		Path:        finalPath,
		Diagnostics: res.Diagnostics, // warnings, if any
	}, nil
}

func extensionFor(format Format) string {
	if format == FormatMultiFileBundle {
		return bundleExt
	}
	return solitaryExt
}
