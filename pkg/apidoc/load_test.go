package apidoc

import (
	"testing"

	"github.com/matzehuels/docgraph/pkg/errors"
)

func TestLoadYAML(t *testing.T) {
	ix, err := Load("testdata/model.yaml")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	pkg := ix.Lookup("epydoc")
	if pkg == nil || pkg.Kind != KindModule || !pkg.IsPackage {
		t.Fatalf("epydoc = %+v, want package", pkg)
	}
	if len(pkg.Submodules) != 2 {
		t.Errorf("epydoc submodules = %v, want 2", pkg.Submodules)
	}

	object := ix.Lookup("object")
	if object == nil || !object.Root || object.Kind != KindClass {
		t.Fatalf("object = %+v, want implicit root class", object)
	}

	apidoc := ix.Lookup("epydoc.apidoc.APIDoc")
	if len(apidoc.Subclasses) != 1 || apidoc.Subclasses[0].Name.Last() != "ValueDoc" {
		t.Errorf("APIDoc subclasses = %v", apidoc.Subclasses)
	}

	valueDoc := ix.Lookup("epydoc.apidoc.ValueDoc")
	if len(valueDoc.Members) != 1 || valueDoc.Members[0].Kind != KindRoutine {
		t.Errorf("ValueDoc members = %v", valueDoc.Members)
	}

	wrap := ix.Lookup("epydoc.apidoc.wrap")
	if wrap.Resolve() != ix.Lookup("epydoc.util.wordwrap") {
		t.Errorf("wrap.Resolve() = %v", wrap.Resolve())
	}

	if !ix.HasProfile() {
		t.Fatal("model with calls should have a profile")
	}
	ww := ix.Lookup("epydoc.util.wordwrap")
	if len(ix.Callers[ww]) != 1 {
		t.Errorf("callers of wordwrap = %v", ix.Callers[ww])
	}
}

func TestLoadTOML(t *testing.T) {
	ix, err := Load("testdata/model.toml")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if ix.Len() != 2 {
		t.Errorf("Len() = %d, want 2", ix.Len())
	}
	if !ix.HasProfile() {
		t.Error("profiled = true should enable the profile")
	}
	if len(ix.Callers) != 0 {
		t.Errorf("Callers = %v, want empty", ix.Callers)
	}
}

func TestDecodeJSON(t *testing.T) {
	m, err := Decode([]byte(`{"entities":[{"name":"m","kind":"module"}]}`), "json")
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	ix, err := m.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if ix.HasProfile() {
		t.Error("model without calls should have no profile")
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		model Model
		code  errors.Code
	}{
		{
			name:  "bad name",
			model: Model{Entities: []EntitySpec{{Name: "a..b", Kind: "module"}}},
			code:  errors.ErrCodeInvalidName,
		},
		{
			name:  "bad kind",
			model: Model{Entities: []EntitySpec{{Name: "a", Kind: "widget"}}},
			code:  errors.ErrCodeInvalidInput,
		},
		{
			name: "duplicate",
			model: Model{Entities: []EntitySpec{
				{Name: "a", Kind: "module"},
				{Name: "a", Kind: "class"},
			}},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "alias cycle",
			model: Model{Entities: []EntitySpec{
				{Name: "m", Kind: "module"},
				{Name: "m.a", Kind: "variable", Value: "m.b"},
				{Name: "m.b", Kind: "variable", Value: "m.a"},
			}},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "self alias",
			model: Model{Entities: []EntitySpec{
				{Name: "m", Kind: "module"},
				{Name: "m.a", Kind: "variable", Value: "m.a"},
			}},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "unknown call",
			model: Model{
				Entities: []EntitySpec{{Name: "f", Kind: "function"}},
				Calls:    []CallSpec{{Caller: "f", Callee: "g"}},
			},
			code: errors.ErrCodeNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.model.Build()
			if !errors.Is(err, tt.code) {
				t.Errorf("Build() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestResolveStopsOnAliasCycle(t *testing.T) {
	a := &Doc{Name: ParseName("m.a"), Kind: KindVariable}
	b := &Doc{Name: ParseName("m.b"), Kind: KindVariable, Value: a}
	a.Value = b

	if got := a.Resolve(); got != b {
		t.Errorf("a.Resolve() = %v, want m.b", got)
	}
	if got := b.Resolve(); got != a {
		t.Errorf("b.Resolve() = %v, want m.a", got)
	}

	self := &Doc{Name: ParseName("m.c"), Kind: KindVariable}
	self.Value = self
	if got := self.Resolve(); got != self {
		t.Errorf("self.Resolve() = %v, want m.c", got)
	}
}

func TestDecodeUnsupportedFormat(t *testing.T) {
	_, err := Decode([]byte("x"), "xml")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Decode() error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}
