package forge

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// The catalog ships inside the binary. Template filenames and contents may
// carry __TOKEN__ placeholders; both are substituted.
//
//go:embed all:templates
var templateFS embed.FS

// Template is one parameterized skeleton set: an ordered list of relative
// paths and content patterns.
type Template struct {
	ID     string
	Format Format
	Files  []TemplateFile
}

// TemplateFile is one file of a template before substitution.
type TemplateFile struct {
	Path    string // relative path within the artifact, may contain tokens
	Content string
}

// TemplateNotFoundError reports a format/selector combination the catalog
// does not carry. It is a caller error and short-circuits the pipeline.
type TemplateNotFoundError struct {
	Format   Format
	Selector string
}

func (e *TemplateNotFoundError) Error() string {
	if e.Selector != "" {
		return fmt.Sprintf("no template for format %q with selector %q", e.Format, e.Selector)
	}
	return fmt.Sprintf("no template for format %q", e.Format)
}

// BundleSelectors lists the skeleton sets available for the bundle format.
func BundleSelectors() []string {
	entries, err := fs.ReadDir(templateFS, "templates/"+string(FormatMultiFileBundle))
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// LookupTemplate resolves a format (and, for bundles, a selector) to its
// skeleton set. The selector is required exactly when the format is
// multi-file-bundle.
func LookupTemplate(format Format, selector string) (*Template, error) {
	switch format {
	case FormatSingleAction, FormatSingleActionModel, FormatSingleLibrary:
		if selector != "" {
			return nil, &TemplateNotFoundError{Format: format, Selector: selector}
		}
		return loadTemplate(string(format), "templates/"+string(format), format)
	case FormatMultiFileBundle:
		if selector == "" {
			return nil, fmt.Errorf("format %s requires a template selector (available: %s)",
				format, strings.Join(BundleSelectors(), ", "))
		}
		root := path.Join("templates", string(format), selector)
		tmpl, err := loadTemplate(selector, root, format)
		if err != nil {
			return nil, &TemplateNotFoundError{Format: format, Selector: selector}
		}
		return tmpl, nil
	default:
		return nil, &TemplateNotFoundError{Format: format, Selector: selector}
	}
}

func loadTemplate(id, root string, format Format) (*Template, error) {
	tmpl := &Template{ID: id, Format: format}
	err := fs.WalkDir(templateFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := templateFS.ReadFile(p)
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(p, root+"/")
		tmpl.Files = append(tmpl.Files, TemplateFile{Path: rel, Content: string(data)})
		return nil
	})
	if err != nil {
		return nil, &TemplateNotFoundError{Format: format}
	}
	if len(tmpl.Files) == 0 {
		return nil, &TemplateNotFoundError{Format: format}
	}
	sort.Slice(tmpl.Files, func(i, j int) bool { return tmpl.Files[i].Path < tmpl.Files[j].Path })
	return tmpl, nil
}
