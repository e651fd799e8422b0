// Package surface models the host scripting environment's API surface: the
// ambient globals, types, and callable members available to a plug-in at
// runtime. The description is data, not code: a versioned YAML catalog that
// can be updated independently of the checker that consumes it.
package surface

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed surface.yaml
var embeddedSurface []byte

// MemberKind distinguishes property accessors from invocable members.
type MemberKind string

const (
	KindProperty MemberKind = "property"
	KindMethod   MemberKind = "method"
)

// Param describes one parameter of a constructor or method.
type Param struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Optional bool   `yaml:"optional"`
	Variadic bool   `yaml:"variadic"`
}

// Member is a single named member of a type, either static or instance.
type Member struct {
	Name    string     `yaml:"name"`
	Kind    MemberKind `yaml:"kind"`
	Type    string     `yaml:"type"`    // property value type
	Params  []Param    `yaml:"params"`  // method parameters
	Returns string     `yaml:"returns"` // method return type
}

// Constructor describes how a type may be instantiated with `new`.
type Constructor struct {
	Params []Param `yaml:"params"`
}

// Type is one entry in the catalog. Dotted names (e.g. "PlugIn.Action")
// describe nested constructors exposed as statics of their parent.
//
// Opaque types (JSON, Math, Date, …) exist so references to them resolve,
// but their members are never validated; the catalog does not model them.
type Type struct {
	Name        string       `yaml:"name"`
	Constructor *Constructor `yaml:"constructor"`
	FactoryOnly bool         `yaml:"factoryOnly"`
	Opaque      bool         `yaml:"opaque"`
	Statics     []Member     `yaml:"statics"`
	Members     []Member     `yaml:"members"`

	staticIndex map[string]*Member
	memberIndex map[string]*Member
}

// Global is one ambient name available without declaration or import.
type Global struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Surface is the full interface surface description for one host version.
// It is immutable once loaded; the validator never mutates it.
type Surface struct {
	Version string   `yaml:"version"`
	Globals []Global `yaml:"globals"`
	Types   []Type   `yaml:"types"`

	globalIndex map[string]*Global
	typeIndex   map[string]*Type
}

// Load parses a surface description from YAML and builds its lookup indexes.
func Load(data []byte) (*Surface, error) {
	var s Surface
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse surface description: %w", err)
	}
	if s.Version == "" {
		return nil, fmt.Errorf("surface description has no version")
	}
	if len(s.Types) == 0 {
		return nil, fmt.Errorf("surface description declares no types")
	}

	s.globalIndex = make(map[string]*Global, len(s.Globals))
	for i := range s.Globals {
		g := &s.Globals[i]
		if g.Name == "" {
			return nil, fmt.Errorf("surface description: global #%d has no name", i)
		}
		s.globalIndex[g.Name] = g
	}

	s.typeIndex = make(map[string]*Type, len(s.Types))
	for i := range s.Types {
		t := &s.Types[i]
		if t.Name == "" {
			return nil, fmt.Errorf("surface description: type #%d has no name", i)
		}
		t.staticIndex = make(map[string]*Member, len(t.Statics))
		for j := range t.Statics {
			t.staticIndex[t.Statics[j].Name] = &t.Statics[j]
		}
		t.memberIndex = make(map[string]*Member, len(t.Members))
		for j := range t.Members {
			t.memberIndex[t.Members[j].Name] = &t.Members[j]
		}
		s.typeIndex[t.Name] = t
	}

	return &s, nil
}

// LoadFile loads a surface description from disk.
func LoadFile(path string) (*Surface, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read surface description: %w", err)
	}
	return Load(data)
}

// LoadEmbedded loads the surface description shipped with the binary.
func LoadEmbedded() (*Surface, error) {
	return Load(embeddedSurface)
}

// Global returns the ambient global with the given name, or nil.
func (s *Surface) Global(name string) *Global {
	return s.globalIndex[name]
}

// Type returns the type with the given (possibly dotted) name, or nil.
func (s *Surface) Type(name string) *Type {
	return s.typeIndex[name]
}

// HasName reports whether name resolves at the top level: either an ambient
// global or a type usable in static position. Dotted types ("PlugIn.Action")
// also make their root segment resolvable.
func (s *Surface) HasName(name string) bool {
	if s.globalIndex[name] != nil || s.typeIndex[name] != nil {
		return true
	}
	for dotted := range s.typeIndex {
		if strings.HasPrefix(dotted, name+".") {
			return true
		}
	}
	return false
}

// Static returns the static member of a type, or nil.
func (t *Type) Static(name string) *Member {
	return t.staticIndex[name]
}

// Member returns the instance member of a type, or nil.
func (t *Type) Member(name string) *Member {
	return t.memberIndex[name]
}

// MinArgs returns the number of required parameters.
func MinArgs(params []Param) int {
	n := 0
	for _, p := range params {
		if !p.Optional && !p.Variadic {
			n++
		}
	}
	return n
}

// MaxArgs returns the maximum argument count, or -1 when variadic.
func MaxArgs(params []Param) int {
	for _, p := range params {
		if p.Variadic {
			return -1
		}
	}
	return len(params)
}
