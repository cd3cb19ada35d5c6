package dot

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/docgraph/pkg/errors"
)

// Attrs maps Graphviz attribute names to values.
type Attrs map[string]string

// Clone returns a copy of a. Cloning a nil map yields an empty map.
func (a Attrs) Clone() Attrs {
	out := make(Attrs, len(a))
	maps.Copy(out, a)
	return out
}

// Option configures a graph created by [Context.NewGraph].
type Option func(*Graph)

// WithBody sets text that is written verbatim after the default-attribute
// statements, e.g. "ranksep=.3\n".
func WithBody(body string) Option {
	return func(g *Graph) { g.Body = body }
}

// WithNodeDefaults sets the default node attributes.
func WithNodeDefaults(a Attrs) Option {
	return func(g *Graph) { g.NodeDefaults = a.Clone() }
}

// WithEdgeDefaults sets the default edge attributes.
func WithEdgeDefaults(a Attrs) Option {
	return func(g *Graph) { g.EdgeDefaults = a.Clone() }
}

// WithCaption sets the caption shown under the image by [Graph.ToHTML].
func WithCaption(caption string) Option {
	return func(g *Graph) { g.Caption = caption }
}

// Graph is a directed graph that can be serialized to DOT.
//
// The zero value is not usable. Create graphs with [Context.NewGraph].
type Graph struct {
	Title   string
	Caption string
	// UID identifies the graph within its context and names the rendered
	// files and the client-side image map.
	UID string
	// Body is written as-is between the defaults and the node statements.
	Body string

	NodeDefaults Attrs
	EdgeDefaults Attrs
	Nodes        []*Node
	Edges        []*Edge

	ctx *Context
}

// Node is a graph vertex.
type Node struct {
	// ID is unique across all graphs of the owning context.
	ID    int
	Attrs Attrs
	// Port names a part of the node's shape that edges attach to when they
	// do not choose a port themselves.
	Port string

	richLabel string
}

// NodeSpec describes a node for [Graph.NewNode].
type NodeSpec struct {
	Label     string
	RichLabel string
	Attrs     Attrs
}

// Edge is a directed connection between two nodes of the same graph.
type Edge struct {
	From  *Node
	To    *Node
	Attrs Attrs
}

// NewNode adds a node described by spec. Setting both a plain and a rich
// label is a programming error and fails with [errors.ErrCodeContractViolation].
func (g *Graph) NewNode(spec NodeSpec) (*Node, error) {
	if spec.Label != "" && spec.RichLabel != "" {
		return nil, errors.New(errors.ErrCodeContractViolation, "node has both a label and a rich label")
	}
	n := &Node{ID: g.ctx.allocID(), Attrs: spec.Attrs.Clone()}
	if spec.Label != "" {
		n.SetLabel(spec.Label)
	}
	if spec.RichLabel != "" {
		n.SetRichLabel(spec.RichLabel)
	}
	g.Nodes = append(g.Nodes, n)
	return n, nil
}

// AddNode adds a node with a plain label.
func (g *Graph) AddNode(label string, attrs Attrs) *Node {
	n, _ := g.NewNode(NodeSpec{Label: label, Attrs: attrs})
	return n
}

// AddRichNode adds a node with an HTML-like label.
func (g *Graph) AddRichNode(richLabel string, attrs Attrs) *Node {
	n, _ := g.NewNode(NodeSpec{RichLabel: richLabel, Attrs: attrs})
	return n
}

// AddEdge adds an edge from one node to another.
func (g *Graph) AddEdge(from, to *Node, attrs Attrs) *Edge {
	e := &Edge{From: from, To: to, Attrs: attrs.Clone()}
	g.Edges = append(g.Edges, e)
	return e
}

// Label returns the plain label, or "" when the node has none.
func (n *Node) Label() string {
	if n.richLabel != "" {
		return ""
	}
	return n.Attrs["label"]
}

// RichLabel returns the HTML-like label, or "" when the node has none.
func (n *Node) RichLabel() string {
	return n.richLabel
}

// SetLabel sets a plain label and clears any rich label.
func (n *Node) SetLabel(label string) {
	n.richLabel = ""
	n.Attrs["label"] = label
}

// SetRichLabel sets an HTML-like label and clears any plain label.
func (n *Node) SetRichLabel(label string) {
	delete(n.Attrs, "label")
	n.richLabel = label
}

// Bytes returns the DOT description of g.
func (g *Graph) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = g.WriteTo(&buf)
	return buf.Bytes()
}

// String returns the DOT description of g.
func (g *Graph) String() string {
	return string(g.Bytes())
}

// WriteTo writes the DOT description of g to w.
func (g *Graph) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %s {\n", g.UID)
	fmt.Fprintf(&buf, "node [%s]\n", formatAttrs(g.NodeDefaults))
	fmt.Fprintf(&buf, "edge [%s]\n", formatAttrs(g.EdgeDefaults))
	if g.Body != "" {
		buf.WriteString(g.Body)
		if !strings.HasSuffix(g.Body, "\n") {
			buf.WriteByte('\n')
		}
	}

	buf.WriteString("/* Nodes */\n")
	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "node%d", n.ID)
		attrs := formatAttrs(n.Attrs)
		if n.richLabel != "" {
			plain := n.Attrs.Clone()
			delete(plain, "label")
			attrs = "label=<" + n.richLabel + ">"
			if rest := formatAttrs(plain); rest != "" {
				attrs += "," + rest
			}
		}
		if attrs != "" {
			fmt.Fprintf(&buf, " [%s]", attrs)
		}
		buf.WriteByte('\n')
	}

	buf.WriteString("/* Edges */\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "node%d -> node%d", e.From.ID, e.To.ID)
		if attrs := formatAttrs(e.portAttrs()); attrs != "" {
			fmt.Fprintf(&buf, " [%s]", attrs)
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")

	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

// portAttrs returns the edge attributes with ports inherited from its
// endpoints: the start node's port becomes the headport and the end node's
// port the tailport, unless the edge sets them.
func (e *Edge) portAttrs() Attrs {
	attrs := e.Attrs.Clone()
	if _, ok := attrs["headport"]; !ok && e.From.Port != "" {
		attrs["headport"] = e.From.Port
	}
	if _, ok := attrs["tailport"]; !ok && e.To.Port != "" {
		attrs["tailport"] = e.To.Port
	}
	return attrs
}

// quoteValue escapes v for a double-quoted DOT string. Graphviz escapes
// such as \n and \l are kept; an odd run of backslashes before a quote or
// at the end of v gets one more so it cannot swallow the quote.
func quoteValue(v string) string {
	var b strings.Builder
	run := 0
	for _, r := range v {
		switch r {
		case '\\':
			run++
			b.WriteRune(r)
			continue
		case '"':
			if run%2 == 1 {
				b.WriteByte('\\')
			}
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
		run = 0
	}
	if run%2 == 1 {
		b.WriteByte('\\')
	}
	return b.String()
}

func formatAttrs(a Attrs) string {
	parts := make([]string, 0, len(a))
	for _, k := range slices.Sorted(maps.Keys(a)) {
		parts = append(parts, fmt.Sprintf(`%s="%s"`, k, quoteValue(a[k])))
	}
	return strings.Join(parts, ",")
}
