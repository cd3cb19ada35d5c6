package graphs

import (
	"fmt"

	"github.com/matzehuels/docgraph/pkg/apidoc"
	"github.com/matzehuels/docgraph/pkg/dot"
)

const (
	// ModuleBG is the fill colour of module and package icons.
	ModuleBG = "#d8e8ff"
	// SelectedBG highlights the entity the page documents.
	SelectedBG = "#ffd0d0"
	// NoopURL is the href of nodes whose entity has no page.
	NoopURL = "javascript:;"
)

// moduleNodeHTML is a module icon: a small tab above a labelled body.
// Arguments: colour, colour, href, tooltip, label.
const moduleNodeHTML = `<TABLE BORDER="0" CELLBORDER="0" CELLSPACING="0" CELLPADDING="0" PORT="table" ALIGN="LEFT">` +
	`<TR><TD ALIGN="LEFT" VALIGN="BOTTOM" HEIGHT="8" WIDTH="16" FIXEDSIZE="true" BGCOLOR="%s" BORDER="1" PORT="tab"></TD></TR>` +
	`<TR><TD ALIGN="LEFT" VALIGN="TOP" BGCOLOR="%s" BORDER="1" PORT="body" HREF="%s" TOOLTIP="%s">%s</TD></TR>` +
	`</TABLE>`

// NodeKind is the styling category of an entity.
type NodeKind int

const (
	NodeOther NodeKind = iota
	NodeModule
	NodeRoutine
)

// NodeKindOf classifies d after unwrapping variables.
func NodeKindOf(d *apidoc.Doc) NodeKind {
	switch d.Resolve().Kind {
	case apidoc.KindModule:
		return NodeModule
	case apidoc.KindRoutine:
		return NodeRoutine
	}
	return NodeOther
}

// NodeStyle is everything needed to create a styled node.
type NodeStyle struct {
	Label     string
	RichLabel string
	Attrs     dot.Attrs
	Port      string
}

// StyleInput describes the entity being styled.
type StyleInput struct {
	Kind NodeKind
	// Label is the entity name relative to the current entity.
	Label string
	// FullName is the canonical dotted name.
	FullName string
	// URL is the entity's page, "" when it has none.
	URL     string
	Current bool
	// HTMLLabels reports renderer support for HTML-like labels (dot 2.0+).
	HTMLLabels bool
}

// StyleFor returns the node style for in.
func StyleFor(in StyleInput) NodeStyle {
	href := in.URL
	if href == "" {
		href = NoopURL
	}

	switch {
	case in.Kind == NodeModule && in.HTMLLabels:
		color := ModuleBG
		if in.Current {
			color = SelectedBG
		}
		return NodeStyle{
			RichLabel: fmt.Sprintf(moduleNodeHTML, color, color, href, in.FullName, in.Label),
			Attrs: dot.Attrs{
				"href":    href,
				"shape":   "plaintext",
				"tooltip": in.Label,
				"width":   "0",
				"height":  "0",
			},
			Port: "body",
		}

	case in.Kind == NodeRoutine:
		label := in.Label + "()"
		s := NodeStyle{
			Label: label,
			Attrs: dot.Attrs{
				"href":    href,
				"shape":   "box",
				"style":   "rounded",
				"tooltip": label,
				"width":   "0",
				"height":  "0",
			},
		}
		if in.Current {
			s.Attrs["fillcolor"] = SelectedBG
			s.Attrs["style"] = "filled,rounded,bold"
		}
		return s

	default:
		s := NodeStyle{
			Label: in.Label,
			Attrs: dot.Attrs{
				"href":    href,
				"shape":   "box",
				"tooltip": in.Label,
				"width":   "0",
				"height":  "0",
			},
		}
		if in.Current {
			s.Attrs["fillcolor"] = SelectedBG
			s.Attrs["style"] = "filled,bold"
		}
		return s
	}
}
