// Package pkg provides the core libraries for docgraph.
//
// # Overview
//
// docgraph draws Graphviz diagrams of API documentation: package trees,
// class hierarchies, import graphs and call graphs. Every node links to the
// documentation page of the entity it shows, and rendered images come with
// an HTML fragment carrying a clickable image map.
//
// # Architecture
//
// The typical data flow:
//
//	API model (YAML, TOML or JSON)
//	         ↓
//	    [apidoc] package (entity index, dotted names, page URLs)
//	         ↓
//	    [graphs] package (graph builders and node styles)
//	         ↓
//	    [dot] package (DOT graph, serialization, HTML fragments)
//	         ↓
//	    [render] package (dot binary, embedded Graphviz, render cache)
//	         ↓
//	    .dot, image and .html files
//
// [pipeline] runs this for a list of graph directives and writes an index
// page. It is shared by the generate and serve commands.
//
// # Quick Start
//
//	idx, _ := apidoc.Load("api.yaml")
//	b := graphs.NewBuilder(dot.NewContext(), idx, apidoc.NewPageLinker(idx), render.Version{2, 43})
//	g, _ := b.Build(ctx, graphs.KindClassTree, []*apidoc.Doc{idx.Lookup("mod.Base")}, graphs.Options{})
//	html := g.ToHTML(ctx, render.NewExec("dot"), "class_tree.png", true)
//
// # Supporting Packages
//
// [cache] stores rendered images in files or Redis. [config] loads
// docgraph.toml. [errors] defines coded errors and input validation.
// [logging] configures charmbracelet/log loggers. [observability] exposes
// hooks for pipeline, cache and server events.
//
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/docgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/docgraph/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/docgraph/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/docgraph/pkg/errors
// [logging]: https://pkg.go.dev/github.com/matzehuels/docgraph/pkg/logging
// [observability]: https://pkg.go.dev/github.com/matzehuels/docgraph/pkg/observability
//
// [apidoc]: https://pkg.go.dev/github.com/matzehuels/docgraph/pkg/apidoc
// [graphs]: https://pkg.go.dev/github.com/matzehuels/docgraph/pkg/graphs
// [dot]: https://pkg.go.dev/github.com/matzehuels/docgraph/pkg/dot
// [render]: https://pkg.go.dev/github.com/matzehuels/docgraph/pkg/render
package pkg
