package graphs

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/docgraph/pkg/apidoc"
	"github.com/matzehuels/docgraph/pkg/dot"
	"github.com/matzehuels/docgraph/pkg/logging"
)

// maxRowWidth bounds a row of nested package icons, roughly in characters.
const maxRowWidth = 80

// colorStep darkens each nesting level of package icons per channel.
const colorStep = 10

// PackageTree draws packages and all their submodules. The UML style
// nests submodule icons inside their package; the tree style connects
// them with lines.
func (b *Builder) PackageTree(ctx context.Context, packages []*apidoc.Doc, opts Options) *dot.Graph {
	title := "Package Tree for " + NameList(packages, opts.Current)

	if opts.Style == "" || opts.Style == StyleUML {
		if b.htmlLabels() {
			return b.nestedPackageTree(title, packages, opts.Current)
		}
		if opts.Style == StyleUML {
			logging.FromContext(ctx).Warn("UML style package trees require dot version 2.0+", "dot", b.Version)
		}
	}

	g := b.Graphs.NewGraph(title,
		dot.WithBody("ranksep=.3\nnodesep=.1\n"),
		dot.WithEdgeDefaults(dot.Attrs{"dir": "none"}),
	)
	rankdir(g, opts.Dir, "TB")

	modules := newDocSet(packages...)
	queue := append([]*apidoc.Doc(nil), packages...)
	for len(queue) > 0 {
		m := queue[0]
		queue = queue[1:]
		for _, sub := range m.Submodules {
			if !modules.has(sub) {
				modules.add(sub)
				queue = append(queue, sub)
			}
		}
	}

	nodes := b.addNodes(g, modules, opts.Current)

	edges := edgeSet{}
	for m := range modules {
		for _, sub := range m.Submodules {
			edges.add(nodes[m], nodes[sub])
		}
	}
	edges.addTo(g, dot.Attrs{"headport": "tab"})
	return g
}

// nestedPackageTree draws one composite node per root package. Packages
// contained in another listed package are drawn inside it.
func (b *Builder) nestedPackageTree(title string, packages []*apidoc.Doc, current *apidoc.Doc) *dot.Graph {
	g := b.Graphs.NewGraph(title)
	current = current.Resolve()

	for _, p := range packages {
		if dominated(p, packages) {
			continue
		}
		label, _, _ := b.umlPackageLabel(p, current)
		g.AddRichNode(label, dot.Attrs{
			"shape":   "plaintext",
			"href":    b.hrefFor(p),
			"tooltip": p.Name.String(),
		})
	}
	return g
}

func dominated(p *apidoc.Doc, packages []*apidoc.Doc) bool {
	for _, q := range packages {
		if q != p && q.Name.Dominates(p.Name) {
			return true
		}
	}
	return false
}

// umlPackageLabel returns the HTML-like label for pkg, the depth of the
// package tree below it and the label's approximate width in characters.
func (b *Builder) umlPackageLabel(pkg, current *apidoc.Doc) (label string, depth, width int) {
	name, last := pkg.Name.String(), pkg.Name.Last()
	href := b.hrefFor(pkg)

	if !pkg.IsPackage || len(pkg.Submodules) == 0 {
		color := packageColor(pkg == current, 1)
		return fmt.Sprintf(moduleNodeHTML, color, color, href, name, last), 1, len(last) + 3
	}

	const rowHeader = `<TABLE BORDER="0" CELLBORDER="0"><TR>`
	var body strings.Builder
	body.WriteString(`<TABLE BORDER="0" CELLBORDER="0">`)
	fmt.Fprintf(&body, `<TR><TD ALIGN="LEFT">%s</TD></TR>`, last)
	body.WriteString(`<TR><TD>` + rowHeader)

	rows := []int{0}
	for _, sub := range pkg.Submodules {
		subLabel, subDepth, subWidth := b.umlPackageLabel(sub, current)
		if w := rows[len(rows)-1]; w > 0 && w+subWidth > maxRowWidth {
			body.WriteString(`</TR></TABLE></TD></TR>`)
			body.WriteString(`<TR><TD>` + rowHeader)
			rows = append(rows, 0)
		}
		fmt.Fprintf(&body, `<TD ALIGN="LEFT">%s</TD>`, subLabel)
		rows[len(rows)-1] += subWidth
		depth = max(depth, subDepth)
	}
	body.WriteString(`</TR></TABLE></TD></TR></TABLE>`)

	depth++
	color := packageColor(pkg == current, depth)
	label = fmt.Sprintf(`<TABLE BORDER="0" CELLBORDER="0" CELLSPACING="0"><TR>`+
		`<TD ALIGN="LEFT" HEIGHT="8" WIDTH="16" FIXEDSIZE="true" BORDER="1" VALIGN="BOTTOM" BGCOLOR="%s"></TD></TR><TR>`+
		`<TD COLSPAN="5" VALIGN="TOP" ALIGN="LEFT" BORDER="1" BGCOLOR="%s" HREF="%s" TOOLTIP="%s">%s</TD></TR></TABLE>`,
		color, color, href, name, body.String())

	width = len(last) + 3
	for _, w := range rows {
		width = max(width, w)
	}
	return label, depth, width
}

// packageColor is ModuleBG darkened by colorStep per level above the
// leaves, or SelectedBG for the current package.
func packageColor(selected bool, depth int) string {
	if selected {
		return SelectedBG
	}
	base, _ := strconv.ParseInt(ModuleBG[1:], 16, 32)
	shade := (depth - 1) * colorStep
	r := max(0, int(base>>16&0xff)-shade)
	g := max(0, int(base>>8&0xff)-shade)
	bl := max(0, int(base&0xff)-shade)
	return fmt.Sprintf("#%02x%02x%02x", r, g, bl)
}
