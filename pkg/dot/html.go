package dot

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/matzehuels/docgraph/pkg/render"
)

// wideTitle is the combined title and caption length above which the
// caption table is left-aligned and given a fixed width.
const wideTitle = 80

// HTMLTitle returns the title escaped for HTML, with every non-ASCII
// character written as a numeric character reference.
func (g *Graph) HTMLTitle() string {
	return asciiRefs(html.EscapeString(g.Title))
}

// ToHTML returns an HTML fragment showing the image at imageURL with the
// graph's client-side image map. The map is rendered with the cmapx format;
// if that fails the image is shown without one. Graphs with a title or a
// caption are wrapped in a table that displays them under the image.
func (g *Graph) ToHTML(ctx context.Context, r render.Renderer, imageURL string, center bool) string {
	cmapx, _ := g.Render(ctx, r, "cmapx")
	title := g.HTMLTitle()
	caption := asciiRefs(html.EscapeString(g.Caption))

	class := "graph-without-title"
	if title != "" || caption != "" {
		class = "graph-with-title"
	}
	align, width := "center", ""
	if len(title)+len(caption) > wideTitle {
		align, width = "left", ` width="600"`
	}

	var b strings.Builder
	if center {
		b.WriteString("<center>")
	}
	if title != "" || caption != "" {
		fmt.Fprintf(&b, "<p><table border=\"0\" cellpadding=\"0\" cellspacing=\"0\" class=\"graph\"%s>\n  <tr><td align=\"center\">\n", width)
	}
	fmt.Fprintf(&b, "  %s\n  <img src=\"%s\" alt=\"%s\" usemap=\"#%s\" ismap=\"ismap\" class=\"%s\">\n",
		strings.TrimSpace(string(cmapx)), html.EscapeString(imageURL), title, g.UID, class)
	if title != "" || caption != "" {
		fmt.Fprintf(&b, "  </td></tr>\n  <tr><td align=\"%s\">\n", align)
		if title != "" {
			fmt.Fprintf(&b, `<span class="graph-title">%s</span>`, title)
		}
		if title != "" && caption != "" {
			b.WriteString(" -- ")
		}
		if caption != "" {
			fmt.Fprintf(&b, `<span class="graph-caption">%s</span>`, caption)
		}
		b.WriteString("\n  </td></tr>\n</table></p>")
	}
	if center {
		b.WriteString("</center>")
	}
	return b.String()
}

// asciiRefs replaces every non-ASCII rune in s with a &#N; reference.
func asciiRefs(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 0x80 {
			b.WriteRune(r)
			continue
		}
		fmt.Fprintf(&b, "&#%d;", r)
	}
	return b.String()
}
