package surface

import (
	"strings"
	"testing"
)

func TestLoadEmbedded(t *testing.T) {
	s, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded() error = %v", err)
	}
	if s.Version == "" {
		t.Error("embedded surface has no version")
	}
	if s.Global("document") == nil {
		t.Error("expected ambient global document")
	}
	if s.Global("definitelyNotAGlobal") != nil {
		t.Error("unexpected global resolved")
	}

	action := s.Type("PlugIn.Action")
	if action == nil {
		t.Fatal("expected type PlugIn.Action")
	}
	if action.Constructor == nil {
		t.Error("PlugIn.Action should declare a constructor")
	}
	if m := action.Member("validate"); m == nil || m.Kind != KindProperty {
		t.Errorf("PlugIn.Action.validate = %+v, want property member", m)
	}

	doc := s.Type("Document")
	if doc == nil || !doc.FactoryOnly {
		t.Error("Document should be factory-only")
	}
	if m := doc.Member("save"); m == nil || m.Kind != KindMethod {
		t.Errorf("Document.save = %+v, want method member", m)
	}
}

func TestHasName(t *testing.T) {
	s, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded() error = %v", err)
	}

	tests := []struct {
		name string
		want bool
	}{
		{"document", true},       // ambient global
		{"Task", true},           // type
		{"Task.Status", true},    // dotted type
		{"PlugIn", true},         // root of dotted types
		{"task", false},          // case matters
		{"Frobnicator", false},   // unknown
		{"flattenedTasks", true}, // ambient collection
	}
	for _, tt := range tests {
		if got := s.HasName(tt.name); got != tt.want {
			t.Errorf("HasName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"bad yaml", "version: [", "parse"},
		{"no version", "globals: []\ntypes: [{name: Task}]", "no version"},
		{"no types", `version: "1.0"`, "no types"},
		{"unnamed type", "version: \"1.0\"\ntypes:\n  - {factoryOnly: true}", "has no name"},
		{"unnamed global", "version: \"1.0\"\nglobals:\n  - {type: Task}\ntypes:\n  - {name: Task}", "has no name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Load() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestArgBounds(t *testing.T) {
	params := []Param{
		{Name: "a", Type: "string"},
		{Name: "b", Type: "string", Optional: true},
	}
	if got := MinArgs(params); got != 1 {
		t.Errorf("MinArgs = %d, want 1", got)
	}
	if got := MaxArgs(params); got != 2 {
		t.Errorf("MaxArgs = %d, want 2", got)
	}

	variadic := []Param{{Name: "message", Type: "any", Variadic: true}}
	if got := MinArgs(variadic); got != 0 {
		t.Errorf("MinArgs(variadic) = %d, want 0", got)
	}
	if got := MaxArgs(variadic); got != -1 {
		t.Errorf("MaxArgs(variadic) = %d, want -1", got)
	}
}
