package validate

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LoadArtifact reads an already-deployed artifact back into memory so the
// same checks that gated its generation can be re-run at any time. A
// directory is treated as a bundle; a regular file as a solitary plug-in.
func LoadArtifact(root string) (Artifact, error) {
	info, err := os.Stat(root)
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to read artifact: %w", err)
	}

	if !info.IsDir() {
		data, err := os.ReadFile(root)
		if err != nil {
			return Artifact{}, fmt.Errorf("failed to read artifact: %w", err)
		}
		return Artifact{
			Files: []SourceFile{{Path: filepath.Base(root), Content: string(data)}},
		}, nil
	}

	var files []SourceFile
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		files = append(files, SourceFile{Path: filepath.ToSlash(rel), Content: string(data)})
		return nil
	})
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to read bundle: %w", err)
	}
	if len(files) == 0 {
		return Artifact{}, fmt.Errorf("bundle at %s contains no files", root)
	}

	return Artifact{Bundle: true, Files: files}, nil
}

// CheckDeployed re-validates an artifact on disk: the three core checks plus
// manifest consistency, the development-file scan, and the warning-only
// style pass.
func (v *Validator) CheckDeployed(path string) (*Result, error) {
	artifact, err := LoadArtifact(path)
	if err != nil {
		return nil, err
	}
	return v.Check(artifact, Options{DevelopmentFiles: true, Lint: true}), nil
}
