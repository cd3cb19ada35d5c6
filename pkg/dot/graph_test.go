package dot

import (
	"regexp"
	"strings"
	"testing"

	"github.com/matzehuels/docgraph/pkg/errors"
)

var uidRe = regexp.MustCompile(`^\w+$`)

func TestSanitizeUID(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Package Tree for epydoc", "package_tree_for_epydoc"},
		{"Class Hierarchy for APIDoc", "class_hierarchy_for_apidoc"},
		{"Überblick", "uberblick"},
		{"ﬁle graph", "file_graph"},
		{"日本", "__"},
		{"", "graph"},
		{"3D view", "g3d_view"},
		{"Call Graph for epydoc.docwriter.dotgraph.call_graph", "call_graph_for_epydoc_docwrite"},
	}
	for _, tt := range tests {
		got := sanitizeUID(tt.title)
		if got != tt.want {
			t.Errorf("sanitizeUID(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestUIDsAreUnique(t *testing.T) {
	gc := NewContext()
	titles := []string{
		"Import Graph", "Import Graph", "Import Graph",
		"Import-Graph",
		strings.Repeat("very long title ", 5), strings.Repeat("very long title ", 5),
		"", "",
	}
	for range 12 {
		titles = append(titles, strings.Repeat("x", 40))
	}

	seen := make(map[string]bool)
	for _, title := range titles {
		g := gc.NewGraph(title)
		if seen[g.UID] {
			t.Fatalf("duplicate uid %q for title %q", g.UID, title)
		}
		seen[g.UID] = true
		if len(g.UID) > MaxUIDLength {
			t.Errorf("uid %q is longer than %d", g.UID, MaxUIDLength)
		}
		if !uidRe.MatchString(g.UID) {
			t.Errorf("uid %q contains non-word characters", g.UID)
		}
	}

	if gc.UIDs() != len(titles) {
		t.Errorf("UIDs() = %d, want %d", gc.UIDs(), len(titles))
	}
}

func TestUIDSuffix(t *testing.T) {
	gc := NewContext()
	for i, want := range []string{"import_graph", "import_graph_2", "import_graph_3"} {
		if got := gc.NewGraph("Import Graph").UID; got != want {
			t.Errorf("graph %d uid = %q, want %q", i, got, want)
		}
	}

	long := strings.Repeat("a", 40)
	gc.NewGraph(long)
	if got := gc.NewGraph(long).UID; got != strings.Repeat("a", 28)+"_2" {
		t.Errorf("truncated duplicate uid = %q", got)
	}
}

func TestContextsAreIndependent(t *testing.T) {
	a, b := NewContext(), NewContext()
	if a.NewGraph("G").UID != b.NewGraph("G").UID {
		t.Error("separate contexts should not share uid state")
	}
	na := a.NewGraph("H").AddNode("x", nil)
	nb := b.NewGraph("H").AddNode("x", nil)
	if na.ID != 0 || nb.ID != 0 {
		t.Errorf("node ids = %d, %d; want each context to start at 0", na.ID, nb.ID)
	}
}

func TestNodeIDsUniqueAcrossGraphs(t *testing.T) {
	gc := NewContext()
	g1, g2 := gc.NewGraph("one"), gc.NewGraph("two")
	ids := map[int]bool{}
	for range 5 {
		for _, g := range []*Graph{g1, g2} {
			n := g.AddNode("n", nil)
			if ids[n.ID] {
				t.Fatalf("node id %d reused", n.ID)
			}
			ids[n.ID] = true
		}
	}
}

func TestLabelsAreExclusive(t *testing.T) {
	g := NewContext().NewGraph("labels")
	n := g.AddNode("plain", nil)

	n.SetRichLabel("<B>rich</B>")
	if n.Label() != "" || n.RichLabel() != "<B>rich</B>" {
		t.Errorf("after SetRichLabel: label=%q rich=%q", n.Label(), n.RichLabel())
	}
	out := g.String()
	if strings.Contains(out, `label="plain"`) || !strings.Contains(out, "label=<<B>rich</B>>") {
		t.Errorf("serialized rich node:\n%s", out)
	}

	n.SetLabel("again")
	if n.RichLabel() != "" || n.Label() != "again" {
		t.Errorf("after SetLabel: label=%q rich=%q", n.Label(), n.RichLabel())
	}
	out = g.String()
	if strings.Contains(out, "label=<") || !strings.Contains(out, `label="again"`) {
		t.Errorf("serialized plain node:\n%s", out)
	}
}

func TestNewNodeRejectsBothLabels(t *testing.T) {
	g := NewContext().NewGraph("bad")
	_, err := g.NewNode(NodeSpec{Label: "a", RichLabel: "<B>a</B>"})
	if !errors.Is(err, errors.ErrCodeContractViolation) {
		t.Errorf("NewNode() error = %v, want CONTRACT_VIOLATION", err)
	}
	if len(g.Nodes) != 0 {
		t.Error("a rejected node must not be added")
	}
}

func TestSerializeBody(t *testing.T) {
	g := NewContext().NewGraph("tree", WithBody("ranksep=.3"))
	out := g.String()

	edge := strings.Index(out, "edge [")
	body := strings.Index(out, "ranksep=.3")
	end := strings.LastIndex(out, "}")
	if edge < 0 || body < edge || end < body {
		t.Errorf("body not between defaults and closing brace:\n%s", out)
	}
}

func TestSerialize(t *testing.T) {
	g := NewContext().NewGraph("Class Hierarchy for A",
		WithNodeDefaults(Attrs{"shape": "box", "width": "0"}),
		WithEdgeDefaults(Attrs{"dir": "none", "sametail": "true"}),
		WithBody("ranksep=0.3\n"),
	)
	a := g.AddNode("A", Attrs{"tooltip": `say "hi"`})
	b := g.AddRichNode("<I>B</I>", Attrs{"href": "b.html"})
	g.AddEdge(a, b, nil)

	want := `digraph class_hierarchy_for_a {
node [shape="box",width="0"]
edge [dir="none",sametail="true"]
ranksep=0.3
/* Nodes */
node0 [label="A",tooltip="say \"hi\""]
node1 [label=<<I>B</I>>,href="b.html"]
/* Edges */
node0 -> node1
}
`
	if got := g.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestQuoteValue(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`plain`, `plain`},
		{`say "hi"`, `say \"hi\"`},
		{`C:\`, `C:\\`},
		{`C:\\`, `C:\\`},
		{`line\lnext\n`, `line\lnext\n`},
		{`a\"b`, `a\\\"b`},
	}
	for _, tt := range tests {
		if got := quoteValue(tt.in); got != tt.want {
			t.Errorf("quoteValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSerializeTrailingBackslash(t *testing.T) {
	g := NewContext().NewGraph("paths")
	g.AddNode(`C:\`, Attrs{"tooltip": "a"})
	if want := `node0 [label="C:\\",tooltip="a"]`; !strings.Contains(g.String(), want) {
		t.Errorf("String() =\n%s\nwant a line %s", g.String(), want)
	}
}

func TestPortInheritance(t *testing.T) {
	g := NewContext().NewGraph("ports")
	pkg := g.AddNode("pkg", nil)
	pkg.Port = "tab"
	mod := g.AddNode("mod", nil)
	mod.Port = "body"
	other := g.AddNode("other", nil)

	g.AddEdge(pkg, other, nil)
	g.AddEdge(pkg, mod, Attrs{"headport": "n"})
	g.AddEdge(other, other, nil)

	out := g.String()
	for _, want := range []string{
		`node0 -> node2 [headport="tab"]`,
		`node0 -> node1 [headport="n",tailport="body"]`,
		"node2 -> node2\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if _, ok := g.Edges[0].Attrs["headport"]; ok {
		t.Error("port inheritance must not modify the edge")
	}
}

func TestBytesMatchesWriteTo(t *testing.T) {
	g := NewContext().NewGraph("w")
	g.AddNode("x", nil)
	var sb strings.Builder
	n, err := g.WriteTo(&sb)
	if err != nil {
		t.Fatal(err)
	}
	if int(n) != len(g.Bytes()) || sb.String() != string(g.Bytes()) {
		t.Error("WriteTo and Bytes disagree")
	}
}
