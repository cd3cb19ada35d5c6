package render

import (
	"bytes"
	"context"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/docgraph/pkg/errors"
	"github.com/matzehuels/docgraph/pkg/observability"
)

// EmbeddedVersion is reported by [Embedded]. The bundled Graphviz supports
// HTML-like labels, which is all builders check for.
var EmbeddedVersion = Version{2, 0}

var embeddedFormats = map[string]graphviz.Format{
	"svg":  graphviz.SVG,
	"png":  graphviz.PNG,
	"jpg":  graphviz.JPG,
	"jpeg": graphviz.JPG,
}

// Embedded renders in-process with the Graphviz library bundled by
// github.com/goccy/go-graphviz, so no dot binary is needed. It supports
// svg, png and jpg, and pdf when rsvg-convert is installed. Client-side
// image maps (cmapx) and gif are not available.
type Embedded struct{}

// NewEmbedded creates an embedded renderer.
func NewEmbedded() *Embedded {
	return &Embedded{}
}

// Name returns "embedded".
func (*Embedded) Name() string {
	return "embedded"
}

// Version returns [EmbeddedVersion].
func (*Embedded) Version(context.Context) Version {
	return EmbeddedVersion
}

// Render lays out src. Formats other than svg, png, jpg and pdf fail with
// UNSUPPORTED_FORMAT.
func (e *Embedded) Render(ctx context.Context, src []byte, format string) (out []byte, err error) {
	observability.Pipeline().OnRenderStart(ctx, e.Name(), format)
	start := time.Now()
	defer func() {
		observability.Pipeline().OnRenderComplete(ctx, e.Name(), format, len(out), time.Since(start), err)
	}()

	if format == "pdf" {
		svg, err := renderEmbedded(ctx, src, graphviz.SVG)
		if err != nil {
			return nil, err
		}
		return ToPDF(ctx, svg)
	}

	f, ok := embeddedFormats[format]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupportedFormat, "embedded renderer cannot produce %q", format)
	}
	return renderEmbedded(ctx, src, f)
}

func renderEmbedded(ctx context.Context, src []byte, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeToolUnavailable, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeToolFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeToolFailed, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

var _ Renderer = (*Embedded)(nil)
