package graphs

import (
	"context"

	"github.com/matzehuels/docgraph/pkg/apidoc"
	"github.com/matzehuels/docgraph/pkg/dot"
)

// ClassTree draws the given classes with all of their subclasses and base
// classes. Edges join each class to its direct subclasses and carry no
// arrowheads.
func (b *Builder) ClassTree(ctx context.Context, bases []*apidoc.Doc, opts Options) *dot.Graph {
	g := b.Graphs.NewGraph("Class Hierarchy for "+NameList(bases, opts.Current),
		dot.WithBody("ranksep=0.3\n"),
		dot.WithEdgeDefaults(dot.Attrs{"sametail": "true", "dir": "none"}),
	)
	rankdir(g, opts.Dir, "TB")

	found := newDocSet(bases...)
	walk(bases, found, func(d *apidoc.Doc) []*apidoc.Doc { return d.Subclasses })
	walk(bases, found, func(d *apidoc.Doc) []*apidoc.Doc { return d.Bases })

	classes := docSet{}
	for d := range found {
		if d.Kind == apidoc.KindClass && !d.Root {
			classes.add(d)
		}
	}
	nodes := b.addNodes(g, classes, opts.Current)

	edges := edgeSet{}
	for cls := range classes {
		for _, sub := range cls.Subclasses {
			edges.add(nodes[cls], nodes[sub])
		}
	}
	edges.addTo(g, nil)
	return g
}

// walk adds everything reachable from seeds through next to found,
// breadth first.
func walk(seeds []*apidoc.Doc, found docSet, next func(*apidoc.Doc) []*apidoc.Doc) {
	seen := newDocSet(seeds...)
	queue := append([]*apidoc.Doc(nil), seeds...)
	for len(queue) > 0 {
		d := queue[0]
		queue = queue[1:]
		for _, n := range next(d) {
			if !seen.has(n) {
				seen.add(n)
				found.add(n)
				queue = append(queue, n)
			}
		}
	}
}
