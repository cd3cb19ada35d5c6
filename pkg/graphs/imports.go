package graphs

import (
	"context"

	"github.com/matzehuels/docgraph/pkg/apidoc"
	"github.com/matzehuels/docgraph/pkg/dot"
)

// ImportGraph draws an edge from each imported module to the module that
// imports it. Only the given modules appear; an imported name is resolved
// to the longest of its prefixes that names a module.
func (b *Builder) ImportGraph(ctx context.Context, modules []*apidoc.Doc, opts Options) *dot.Graph {
	g := b.Graphs.NewGraph("Import Graph", dot.WithBody("ranksep=.3\nnodesep=.3\n"))
	rankdir(g, opts.Dir, "RL")

	nodes := b.addNodes(g, newDocSet(modules...), opts.Current)

	edges := edgeSet{}
	for _, dst := range modules {
		for _, name := range dst.Imports {
			if src := b.Index.LongestModulePrefix(name); src != nil {
				edges.add(nodes[src], nodes[dst])
			}
		}
	}
	edges.addTo(g, nil)
	return g
}
