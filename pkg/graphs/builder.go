package graphs

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/docgraph/pkg/apidoc"
	"github.com/matzehuels/docgraph/pkg/dot"
	"github.com/matzehuels/docgraph/pkg/errors"
	"github.com/matzehuels/docgraph/pkg/render"
)

// Kind names a diagram type.
type Kind string

const (
	KindPackageTree Kind = "package-tree"
	KindClassTree   Kind = "class-tree"
	KindImportGraph Kind = "import-graph"
	KindCallGraph   Kind = "call-graph"
)

// Kinds lists every diagram type.
var Kinds = []Kind{KindPackageTree, KindClassTree, KindImportGraph, KindCallGraph}

// ParseKind validates a diagram type name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Kinds, k) {
		return k, nil
	}
	return "", errors.New(errors.ErrCodeInvalidGraphKind, "unknown graph kind %q (want one of %s)", s, kindList())
}

func kindList() string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// Package tree styles.
const (
	StyleUML  = "uml"
	StyleTree = "tree"
)

// Options tune a builder call. The zero value uses every default.
type Options struct {
	// Dir is the Graphviz rankdir (TB, BT, LR or RL). Empty selects the
	// builder's default: TB for trees, RL for imports, LR for calls.
	Dir string
	// Style selects the package tree style. Empty means UML when the
	// renderer supports it; an explicit StyleUML additionally warns when it
	// does not.
	Style string
	// AddCallers and AddCallees extend a call graph with the recorded
	// callers and callees of the selected routines.
	AddCallers bool
	AddCallees bool
	// Current is the entity the surrounding page documents. Labels are
	// shortened relative to it and its node is highlighted.
	Current *apidoc.Doc
}

// Builder creates graphs for one documentation run.
type Builder struct {
	Graphs  *dot.Context
	Index   *apidoc.Index
	Linker  dot.Linker
	Version render.Version
}

// NewBuilder creates a builder. A nil linker gives every node [NoopURL].
func NewBuilder(gc *dot.Context, idx *apidoc.Index, l dot.Linker, v render.Version) *Builder {
	return &Builder{Graphs: gc, Index: idx, Linker: l, Version: v}
}

// Build dispatches to the builder for kind.
func (b *Builder) Build(ctx context.Context, kind Kind, docs []*apidoc.Doc, opts Options) (*dot.Graph, error) {
	if err := errors.ValidateDirection(opts.Dir); err != nil {
		return nil, err
	}
	switch kind {
	case KindPackageTree:
		return b.PackageTree(ctx, docs, opts), nil
	case KindClassTree:
		return b.ClassTree(ctx, docs, opts), nil
	case KindImportGraph:
		return b.ImportGraph(ctx, docs, opts), nil
	case KindCallGraph:
		return b.CallGraph(ctx, docs, opts), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidGraphKind, "unknown graph kind %q", kind)
}

func (b *Builder) htmlLabels() bool {
	return b.Version.AtLeast(2)
}

func (b *Builder) urlFor(d *apidoc.Doc) string {
	if b.Linker == nil {
		return ""
	}
	u, _ := b.Linker.URLFor(d.Name.String())
	return u
}

func (b *Builder) hrefFor(d *apidoc.Doc) string {
	if u := b.urlFor(d); u != "" {
		return u
	}
	return NoopURL
}

// rankdir appends a rankdir statement to g's body unless dir is TB, the
// Graphviz default.
func rankdir(g *dot.Graph, dir, def string) {
	if dir == "" {
		dir = def
	}
	if dir != "TB" {
		g.Body += "rankdir=" + dir + "\n"
	}
}

// addNodes creates one styled node per entity, in canonical name order.
func (b *Builder) addNodes(g *dot.Graph, docs docSet, current *apidoc.Doc) map[*apidoc.Doc]*dot.Node {
	current = current.Resolve()
	var rel apidoc.DottedName
	if current != nil {
		rel = current.Name
	}

	nodes := make(map[*apidoc.Doc]*dot.Node, len(docs))
	for _, d := range docs.sorted() {
		style := StyleFor(StyleInput{
			Kind:       NodeKindOf(d),
			Label:      d.Name.Contextualize(rel).String(),
			FullName:   d.Name.String(),
			URL:        b.urlFor(d),
			Current:    current != nil && d.Resolve() == current,
			HTMLLabels: b.htmlLabels(),
		})
		n, _ := g.NewNode(dot.NodeSpec{Label: style.Label, RichLabel: style.RichLabel, Attrs: style.Attrs})
		n.Port = style.Port
		nodes[d] = n
	}
	return nodes
}

// docSet is a set of entities.
type docSet map[*apidoc.Doc]struct{}

func newDocSet(docs ...*apidoc.Doc) docSet {
	s := make(docSet, len(docs))
	s.add(docs...)
	return s
}

func (s docSet) add(docs ...*apidoc.Doc) {
	for _, d := range docs {
		if d != nil {
			s[d] = struct{}{}
		}
	}
}

func (s docSet) has(d *apidoc.Doc) bool {
	_, ok := s[d]
	return ok
}

func (s docSet) sorted() []*apidoc.Doc {
	return slices.SortedFunc(maps.Keys(s), func(a, b *apidoc.Doc) int {
		return slices.Compare(a.Name, b.Name)
	})
}

type edgeKey struct{ from, to *dot.Node }

// edgeSet collects edges once per node pair.
type edgeSet map[edgeKey]struct{}

func (s edgeSet) add(from, to *dot.Node) {
	if from != nil && to != nil {
		s[edgeKey{from, to}] = struct{}{}
	}
}

// addTo adds the edges to g ordered by (source ID, target ID).
func (s edgeSet) addTo(g *dot.Graph, attrs dot.Attrs) {
	keys := slices.SortedFunc(maps.Keys(s), func(a, b edgeKey) int {
		return cmp.Or(cmp.Compare(a.from.ID, b.from.ID), cmp.Compare(a.to.ID, b.to.ID))
	})
	for _, k := range keys {
		g.AddEdge(k.from, k.to, attrs)
	}
}

// NameList joins entity names for a graph title: "", "A", "A and B",
// "A, B, and C". Names are shortened relative to current.
func NameList(docs []*apidoc.Doc, current *apidoc.Doc) string {
	var rel apidoc.DottedName
	if current != nil {
		rel = current.Name
	}
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name.Contextualize(rel).String()
	}

	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	}
	return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
}
