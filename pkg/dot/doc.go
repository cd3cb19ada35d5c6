// Package dot builds Graphviz graph descriptions and turns them into
// images and HTML fragments.
//
// # Overview
//
// A [Graph] is an in-memory directed graph: a title, an optional caption,
// default attributes for nodes and edges, free-form body text, and ordered
// lists of [Node] and [Edge] values. [Graph.Bytes] serializes it to the DOT
// language:
//
//	digraph package_tree_for_epydoc {
//	node []
//	edge [dir="none"]
//	ranksep=.3
//	/* Nodes */
//	node0 [href="epydoc-module.html",label="epydoc",shape="box"]
//	/* Edges */
//	node0 -> node1 [headport="tab"]
//	}
//
// Attribute keys are written in sorted order so the same graph always
// serializes to the same bytes.
//
// # Contexts
//
// Node IDs and graph UIDs are allocated by a [Context]. A documentation run
// owns one context; every graph created through it gets a UID that is unique
// within the run, at most 30 characters long and made of word characters
// only. Nodes get IDs that are unique across all graphs of the context.
//
//	gc := dot.NewContext()
//	g := gc.NewGraph("Class Hierarchy for APIDoc", dot.WithBody("ranksep=0.3\n"))
//	a := g.AddNode("APIDoc", dot.Attrs{"shape": "box"})
//	b := g.AddNode("ValueDoc", dot.Attrs{"shape": "box"})
//	g.AddEdge(a, b, nil)
//
// # Labels and Ports
//
// A node carries either a plain label or a rich (HTML-like) label, never
// both. [Node.SetLabel] clears the rich label and [Node.SetRichLabel] clears
// the plain one. A node may also name a port; edges that do not set
// headport or tailport themselves inherit the port of their start and end
// node respectively when serialized.
//
// # Cross-references
//
// Builders set href attributes to placeholders such as "<epydoc.apidoc>".
// [Graph.Link] replaces them with URLs from a [Linker], or removes the href
// when the linker does not know the name. Placeholders inside the body text
// (href="<name>") are handled the same way.
//
// # Rendering
//
// [Graph.Render], [Graph.RenderToFile] and [Graph.ToHTML] hand the
// serialized graph to a [render.Renderer]. They are the rendering boundary:
// renderer failures are logged as warnings through the logger in the
// context and turn into an absent result, never an error.
//
// [render.Renderer]: github.com/matzehuels/docgraph/pkg/render.Renderer
package dot
