package graphs

import (
	"context"

	"github.com/matzehuels/docgraph/pkg/apidoc"
	"github.com/matzehuels/docgraph/pkg/dot"
	"github.com/matzehuels/docgraph/pkg/errors"
	"github.com/matzehuels/docgraph/pkg/logging"
)

// CallGraph draws the routines among docs that appear in the call profile,
// optionally with their callers and callees. Variables are unwrapped and
// modules and classes contribute their routine members.
//
// Without profile data it logs a warning and returns an empty graph.
func (b *Builder) CallGraph(ctx context.Context, docs []*apidoc.Doc, opts Options) *dot.Graph {
	if !b.Index.HasProfile() {
		err := errors.New(errors.ErrCodeNoProfile, "no profiling information for call graph")
		logging.FromContext(ctx).Warn("Call graph is empty", "err", err)
		return b.Graphs.NewGraph("Call Graph")
	}

	var functions []*apidoc.Doc
	for _, d := range docs {
		d = d.Resolve()
		switch {
		case d.Kind == apidoc.KindRoutine:
			functions = append(functions, d)
		case d.IsNamespace():
			for _, m := range d.Members {
				if m = m.Resolve(); m.Kind == apidoc.KindRoutine {
					functions = append(functions, m)
				}
			}
		}
	}

	profiled := functions[:0]
	for _, f := range functions {
		_, hasCallers := b.Index.Callers[f]
		_, hasCallees := b.Index.Callees[f]
		if hasCallers || hasCallees {
			profiled = append(profiled, f)
		}
	}
	functions = profiled

	set := newDocSet(functions...)
	for _, f := range functions {
		if opts.AddCallers {
			set.add(b.Index.Callers[f]...)
		}
		if opts.AddCallees {
			set.add(b.Index.Callees[f]...)
		}
	}

	g := b.Graphs.NewGraph("Call Graph for "+NameList(docs, opts.Current),
		dot.WithNodeDefaults(dot.Attrs{"shape": "box", "width": "0", "height": "0"}),
	)
	rankdir(g, opts.Dir, "LR")

	nodes := b.addNodes(g, set, opts.Current)

	edges := edgeSet{}
	for _, f := range functions {
		for _, caller := range b.Index.Callers[f] {
			edges.add(nodes[caller], nodes[f])
		}
		for _, callee := range b.Index.Callees[f] {
			edges.add(nodes[f], nodes[callee])
		}
	}
	edges.addTo(g, nil)
	return g
}
