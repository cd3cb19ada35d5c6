package dot

import "regexp"

// Linker resolves dotted entity names to URLs.
type Linker interface {
	// URLFor returns the URL documenting name, or false when there is none.
	URLFor(name string) (string, bool)
}

// LinkerFunc adapts a function to the [Linker] interface.
type LinkerFunc func(name string) (string, bool)

// URLFor calls f(name).
func (f LinkerFunc) URLFor(name string) (string, bool) { return f(name) }

var (
	hrefPlaceholderRe = regexp.MustCompile(`^<([\w.]+)>$`)
	bodyHrefRe        = regexp.MustCompile(`href\s*=\s*['"]?<([\w.]+)>['"]?\s*(,?)`)
)

// Link replaces href placeholders of the form "<dotted.name>" with URLs
// from l. Node defaults, every node, edge defaults, every edge and the body
// text are linked. Placeholders l cannot resolve are removed.
func (g *Graph) Link(l Linker) {
	linkHref(g.NodeDefaults, l)
	for _, n := range g.Nodes {
		linkHref(n.Attrs, l)
	}

	linkHref(g.EdgeDefaults, l)
	for _, e := range g.Edges {
		linkHref(e.Attrs, l)
	}

	g.Body = bodyHrefRe.ReplaceAllStringFunc(g.Body, func(s string) string {
		m := bodyHrefRe.FindStringSubmatch(s)
		url, ok := l.URLFor(m[1])
		if !ok {
			return ""
		}
		return `href="` + url + `"` + m[2]
	})
}

func linkHref(attrs Attrs, l Linker) {
	href, ok := attrs["href"]
	if !ok {
		return
	}
	m := hrefPlaceholderRe.FindStringSubmatch(href)
	if m == nil {
		return
	}
	if url, ok := l.URLFor(m[1]); ok {
		attrs["href"] = url
	} else {
		delete(attrs, "href")
	}
}
