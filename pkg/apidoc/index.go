package apidoc

import (
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// Index holds every entity of a documentation run, by canonical name, plus the
// optional call profile.
type Index struct {
	docs   []*Doc
	byName map[string]*Doc

	// Callers maps a routine to the routines that call it, and Callees the
	// reverse. Both are nil when no profiling data was collected.
	Callers map[*Doc][]*Doc
	Callees map[*Doc][]*Doc
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{byName: make(map[string]*Doc)}
}

// Add registers d under its canonical name, replacing any previous entry.
func (ix *Index) Add(d *Doc) {
	key := d.Name.String()
	if old, ok := ix.byName[key]; ok {
		i := slices.Index(ix.docs, old)
		ix.docs[i] = d
	} else {
		ix.docs = append(ix.docs, d)
	}
	ix.byName[key] = d
}

// Get returns the entity with the given canonical name, or nil.
func (ix *Index) Get(name DottedName) *Doc {
	return ix.byName[name.String()]
}

// Lookup is Get for a dotted string.
func (ix *Index) Lookup(name string) *Doc {
	return ix.byName[name]
}

// Docs returns all entities in insertion order.
func (ix *Index) Docs() []*Doc {
	return ix.docs
}

// Len returns the number of entities.
func (ix *Index) Len() int {
	return len(ix.docs)
}

// HasProfile reports whether caller/callee information is available.
func (ix *Index) HasProfile() bool {
	return ix.Callers != nil || ix.Callees != nil
}

// AddCall records that caller calls callee, creating the profile maps on
// first use.
func (ix *Index) AddCall(caller, callee *Doc) {
	if ix.Callers == nil {
		ix.Callers = make(map[*Doc][]*Doc)
	}
	if ix.Callees == nil {
		ix.Callees = make(map[*Doc][]*Doc)
	}
	if !slices.Contains(ix.Callers[callee], caller) {
		ix.Callers[callee] = append(ix.Callers[callee], caller)
	}
	if !slices.Contains(ix.Callees[caller], callee) {
		ix.Callees[caller] = append(ix.Callees[caller], callee)
	}
}

// EnableProfile marks the index as profiled even if no calls were recorded.
func (ix *Index) EnableProfile() {
	if ix.Callers == nil {
		ix.Callers = make(map[*Doc][]*Doc)
	}
	if ix.Callees == nil {
		ix.Callees = make(map[*Doc][]*Doc)
	}
}

// LongestModulePrefix resolves an imported name to the module it refers to:
// the longest prefix of name that is a module in the index. It returns nil
// when no prefix names a module.
func (ix *Index) LongestModulePrefix(name DottedName) *Doc {
	for i := len(name); i > 0; i-- {
		if d := ix.Get(name[:i]).Resolve(); d != nil && d.Kind == KindModule {
			return d
		}
	}
	return nil
}

// Match returns the entities whose names match pattern, in insertion order.
// A pattern without glob metacharacters matches one name exactly. Otherwise
// dots are treated as path separators, so "epydoc.*" matches direct children
// of epydoc and "epydoc.**" matches everything below it.
func (ix *Index) Match(pattern string) ([]*Doc, error) {
	if d := ix.byName[pattern]; d != nil {
		return []*Doc{d}, nil
	}
	glob := ParseName(pattern).Path()
	if !doublestar.ValidatePattern(glob) {
		return nil, doublestar.ErrBadPattern
	}
	var out []*Doc
	for _, d := range ix.docs {
		if ok, _ := doublestar.Match(glob, d.Name.Path()); ok {
			out = append(out, d)
		}
	}
	return out, nil
}
