package apidoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/docgraph/pkg/errors"
)

// Model is the on-disk form of an [Index].
type Model struct {
	Entities []EntitySpec `yaml:"entities" toml:"entities" json:"entities"`
	Calls    []CallSpec   `yaml:"calls" toml:"calls" json:"calls"`
	// Profiled marks the model as carrying call-profile data even when Calls
	// is empty. A model with neither has no profile and call graphs degrade
	// to empty graphs.
	Profiled bool `yaml:"profiled" toml:"profiled" json:"profiled"`
}

// EntitySpec describes one entity in a model file.
type EntitySpec struct {
	Name    string   `yaml:"name" toml:"name" json:"name"`
	Kind    string   `yaml:"kind" toml:"kind" json:"kind"`
	Package bool     `yaml:"package,omitempty" toml:"package" json:"package,omitempty"`
	Root    bool     `yaml:"root,omitempty" toml:"root" json:"root,omitempty"`
	Bases   []string `yaml:"bases,omitempty" toml:"bases" json:"bases,omitempty"`
	Imports []string `yaml:"imports,omitempty" toml:"imports" json:"imports,omitempty"`
	Value   string   `yaml:"value,omitempty" toml:"value" json:"value,omitempty"`
}

// CallSpec records one caller/callee pair.
type CallSpec struct {
	Caller string `yaml:"caller" toml:"caller" json:"caller"`
	Callee string `yaml:"callee" toml:"callee" json:"callee"`
}

// rootObjectNames are treated as the universal root object type even when
// the model does not mark them.
var rootObjectNames = map[string]bool{
	"object":             true,
	"builtins.object":    true,
	"__builtin__.object": true,
}

// Load reads a model file and builds its index. The format is chosen by
// extension: .yaml/.yml, .toml or .json.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "read model %s", path)
	}
	m, err := Decode(data, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, err
	}
	return m.Build()
}

// Decode parses model data in the given format ("yaml", "yml", "toml" or "json").
func Decode(data []byte, format string) (*Model, error) {
	var m Model
	var err error
	switch strings.ToLower(format) {
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&m)
	case "toml":
		_, err = toml.Decode(string(data), &m)
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&m)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported model format: %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s model", format)
	}
	return &m, nil
}

// Build validates the model and links its entities into an Index.
func (m *Model) Build() (*Index, error) {
	ix := NewIndex()

	for _, spec := range m.Entities {
		if err := errors.ValidateDottedName(spec.Name); err != nil {
			return nil, err
		}
		kind, ok := ParseKind(spec.Kind)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s: unknown kind %q", spec.Name, spec.Kind)
		}
		if ix.Lookup(spec.Name) != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate entity %s", spec.Name)
		}
		ix.Add(&Doc{
			Name:      ParseName(spec.Name),
			Kind:      kind,
			IsPackage: spec.Package,
			Root:      spec.Root || rootObjectNames[spec.Name],
		})
	}

	for _, spec := range m.Entities {
		d := ix.Lookup(spec.Name)
		if err := m.linkEntity(ix, d, spec); err != nil {
			return nil, err
		}
	}
	for _, d := range ix.Docs() {
		if d.aliasCycle() {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s: variable value refers back to itself", d.Name)
		}
	}

	// Containment is derived from names so a model never has to repeat it.
	for _, d := range ix.Docs() {
		parent := ix.Get(d.Name.Parent())
		if parent == nil || !parent.IsNamespace() {
			continue
		}
		if d.Kind == KindModule && parent.Kind == KindModule {
			parent.IsPackage = true
			parent.Submodules = append(parent.Submodules, d)
			continue
		}
		parent.Members = append(parent.Members, d)
	}

	if m.Profiled {
		ix.EnableProfile()
	}
	for _, c := range m.Calls {
		caller, callee := ix.Lookup(c.Caller), ix.Lookup(c.Callee)
		if caller == nil || callee == nil {
			return nil, errors.New(errors.ErrCodeNotFound, "call %s -> %s references an unknown entity", c.Caller, c.Callee)
		}
		ix.AddCall(caller, callee)
	}

	return ix, nil
}

func (m *Model) linkEntity(ix *Index, d *Doc, spec EntitySpec) error {
	for _, b := range spec.Bases {
		if err := errors.ValidateDottedName(b); err != nil {
			return fmt.Errorf("%s: base: %w", spec.Name, err)
		}
		base := ix.Lookup(b)
		if base == nil {
			// Bases from outside the documented code still belong in class trees.
			base = &Doc{Name: ParseName(b), Kind: KindClass, Root: rootObjectNames[b]}
			ix.Add(base)
		}
		d.Bases = append(d.Bases, base)
		base.Subclasses = append(base.Subclasses, d)
	}
	for _, imp := range spec.Imports {
		if err := errors.ValidateDottedName(imp); err != nil {
			return fmt.Errorf("%s: import: %w", spec.Name, err)
		}
		d.Imports = append(d.Imports, ParseName(imp))
	}
	if spec.Value != "" {
		d.Value = ix.Lookup(spec.Value)
	}
	return nil
}
