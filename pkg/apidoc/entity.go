package apidoc

import "fmt"

// Kind is the kind of a documented entity.
type Kind int

const (
	// KindModule is a module or package.
	KindModule Kind = iota
	// KindClass is a class.
	KindClass
	// KindRoutine is a function or method.
	KindRoutine
	// KindVariable is a named variable; its Value, if known, is another Doc.
	KindVariable
)

var kindNames = map[Kind]string{
	KindModule:   "module",
	KindClass:    "class",
	KindRoutine:  "routine",
	KindVariable: "variable",
}

// String returns the lowercase kind name used in model files.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind parses a model-file kind name. "package" is accepted as a module,
// "function" and "method" as routines.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "module", "package":
		return KindModule, true
	case "class":
		return KindClass, true
	case "routine", "function", "method":
		return KindRoutine, true
	case "variable":
		return KindVariable, true
	}
	return 0, false
}

// Doc is one documented entity.
//
// Relationship slices hold pointers into the same [Index]; entities are
// compared by identity.
type Doc struct {
	Name DottedName
	Kind Kind

	// IsPackage marks modules that may contain submodules.
	IsPackage bool

	// Root marks the universal root object type, which class trees leave out.
	Root bool

	Submodules []*Doc // modules: direct submodules
	Bases      []*Doc // classes: direct base classes
	Subclasses []*Doc // classes: direct subclasses
	Members    []*Doc // modules and classes: contained entities

	// Imports lists the dotted names a module imports. They are resolved
	// lazily because they may point at names outside the index.
	Imports []DottedName

	// Value is what a variable refers to, if known.
	Value *Doc
}

// String returns the canonical name.
func (d *Doc) String() string {
	if d == nil {
		return "<nil>"
	}
	return d.Name.String()
}

// Resolve unwraps variables to their values. Variables with an unknown value,
// and every other kind, are returned as is. A cycle of aliases resolves to
// the last variable before the cycle closes.
func (d *Doc) Resolve() *Doc {
	seen := map[*Doc]bool{}
	for d != nil && d.Kind == KindVariable && d.Value != nil && !seen[d.Value] {
		seen[d] = true
		d = d.Value
	}
	return d
}

// aliasCycle reports whether following d's variable values leads back to a
// variable already visited.
func (d *Doc) aliasCycle() bool {
	seen := map[*Doc]bool{}
	for d != nil && d.Kind == KindVariable {
		if seen[d] {
			return true
		}
		seen[d] = true
		d = d.Value
	}
	return false
}

// IsNamespace reports whether the entity contains members (modules and classes).
func (d *Doc) IsNamespace() bool {
	return d != nil && (d.Kind == KindModule || d.Kind == KindClass)
}
