package apidoc

import "strings"

// PageLinker resolves entity names to documentation page URLs using the
// epydoc page naming scheme:
//
//	module   pkg.mod          -> pkg.mod-module.html
//	class    pkg.mod.C        -> pkg.mod.C-class.html
//	routine  pkg.mod.f        -> pkg.mod-module.html#f
//	method   pkg.mod.C.m      -> pkg.mod.C-class.html#m
//	variable pkg.mod.v        -> pkg.mod-module.html#v
//
// Unknown names resolve to nothing.
type PageLinker struct {
	Index *Index
	// Base is prepended to every URL, e.g. "../api/". Optional.
	Base string
}

// NewPageLinker creates a linker over ix.
func NewPageLinker(ix *Index) *PageLinker {
	return &PageLinker{Index: ix}
}

// URLFor returns the page URL for the entity with the given dotted name.
func (l *PageLinker) URLFor(name string) (string, bool) {
	d := l.Index.Lookup(name)
	if d == nil {
		return "", false
	}
	u := l.pageFor(d)
	if u == "" {
		return "", false
	}
	return l.Base + u, true
}

func (l *PageLinker) pageFor(d *Doc) string {
	switch d.Kind {
	case KindModule:
		return d.Name.String() + "-module.html"
	case KindClass:
		return d.Name.String() + "-class.html"
	}
	parent := l.Index.Get(d.Name.Parent())
	if parent == nil {
		return ""
	}
	page := l.pageFor(parent)
	if page == "" || strings.Contains(page, "#") {
		return ""
	}
	return page + "#" + d.Name.Last()
}
