package validate

import (
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
)

// ManifestName is the fixed manifest filename inside a bundle.
const ManifestName = "manifest.json"

// resourceDir is where a bundle keeps its action and library sources.
const resourceDir = "Resources"

// Manifest is the bundle manifest as the host application reads it.
type Manifest struct {
	Identifier  string          `json:"identifier"`
	Version     string          `json:"version"`
	Author      string          `json:"author,omitempty"`
	Description string          `json:"description,omitempty"`
	Actions     []ManifestEntry `json:"actions,omitempty"`
	Libraries   []ManifestEntry `json:"libraries,omitempty"`
}

// ManifestEntry declares one action or library by identifier; the host maps
// it to Resources/<identifier>.js.
type ManifestEntry struct {
	Identifier string `json:"identifier"`
}

// checkManifest validates that a bundle's manifest declares exactly the
// identifiers present in the file set, in both directions. It assumes the
// manifest already passed the JSON syntax check; a manifest that did not
// parse is skipped here because its declarations are unknowable.
func checkManifest(files []SourceFile) []Diagnostic {
	var manifest *SourceFile
	for i := range files {
		if files[i].Path == ManifestName {
			manifest = &files[i]
			break
		}
	}
	if manifest == nil {
		return []Diagnostic{{
			Severity: SeverityError,
			Check:    CheckManifest,
			File:     ManifestName,
			Message:  "bundle has no manifest.json at its root",
		}}
	}

	var m Manifest
	if err := json.Unmarshal([]byte(manifest.Content), &m); err != nil {
		return nil // reported by the syntax check
	}

	var diags []Diagnostic
	if m.Identifier == "" {
		diags = append(diags, Diagnostic{
			Severity: SeverityError,
			Check:    CheckManifest,
			File:     ManifestName,
			Message:  "manifest declares no plug-in identifier",
		})
	}

	declared := map[string]bool{}
	for _, e := range append(append([]ManifestEntry{}, m.Actions...), m.Libraries...) {
		if e.Identifier == "" {
			diags = append(diags, Diagnostic{
				Severity: SeverityError,
				Check:    CheckManifest,
				File:     ManifestName,
				Message:  "manifest entry with empty identifier",
			})
			continue
		}
		declared[e.Identifier] = true
	}

	actual := map[string]bool{}
	for _, f := range files {
		dir, base := path.Split(f.Path)
		if strings.TrimSuffix(dir, "/") == resourceDir && strings.HasSuffix(base, ".js") {
			actual[strings.TrimSuffix(base, ".js")] = true
		}
	}

	for _, id := range sortedKeys(declared) {
		if !actual[id] {
			diags = append(diags, Diagnostic{
				Severity: SeverityError,
				Check:    CheckManifest,
				File:     ManifestName,
				Message:  fmt.Sprintf("manifest declares %q but %s/%s.js does not exist", id, resourceDir, id),
			})
		}
	}
	for _, id := range sortedKeys(actual) {
		if !declared[id] {
			diags = append(diags, Diagnostic{
				Severity: SeverityError,
				Check:    CheckManifest,
				File:     fmt.Sprintf("%s/%s.js", resourceDir, id),
				Message:  fmt.Sprintf("%s/%s.js is not declared in the manifest", resourceDir, id),
			})
		}
	}
	if len(declared) == 0 && len(diags) == 0 {
		diags = append(diags, Diagnostic{
			Severity: SeverityError,
			Check:    CheckManifest,
			File:     ManifestName,
			Message:  "manifest declares no actions or libraries",
		})
	}

	return diags
}

// checkSolitaryMetadata validates the leading /*{ … }*/ metadata comment the
// host requires at the top of a solitary plug-in file.
func checkSolitaryMetadata(f SourceFile) []Diagnostic {
	fail := func(msg string) []Diagnostic {
		return []Diagnostic{{
			Severity: SeverityError,
			Check:    CheckManifest,
			File:     f.Path,
			Line:     1,
			Message:  msg,
		}}
	}

	text := strings.TrimLeft(f.Content, " \t\r\n\uFEFF")
	if !strings.HasPrefix(text, "/*{") {
		return fail("solitary plug-in file must begin with a /*{ … }*/ metadata comment")
	}
	end := strings.Index(text, "}*/")
	if end < 0 {
		return fail("metadata comment is not terminated with }*/")
	}

	var meta struct {
		Type string `json:"type"`
	}
	raw := text[len("/*") : end+1]
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return fail(fmt.Sprintf("metadata comment is not valid JSON: %v", err))
	}
	switch meta.Type {
	case "action", "library":
		return nil
	case "":
		return fail(`metadata comment declares no "type"`)
	default:
		return fail(fmt.Sprintf("metadata type %q is not recognized (want action or library)", meta.Type))
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
