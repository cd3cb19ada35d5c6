package render

import (
	"context"

	"github.com/matzehuels/docgraph/pkg/errors"
)

// RsvgCommand converts SVG to other formats for [Embedded].
const RsvgCommand = "rsvg-convert"

// ToPDF converts SVG bytes to PDF with rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	out, _, err := RunDot(ctx, RsvgCommand, []string{"-f", "pdf"}, svg)
	if errors.Is(err, errors.ErrCodeToolUnavailable) {
		return nil, errors.Wrap(errors.ErrCodeUnsupportedFormat, err, "pdf export requires librsvg")
	}
	return out, err
}
