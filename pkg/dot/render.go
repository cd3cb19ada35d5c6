package dot

import (
	"context"
	"os"
	"path/filepath"

	"github.com/matzehuels/docgraph/pkg/errors"
	"github.com/matzehuels/docgraph/pkg/logging"
	"github.com/matzehuels/docgraph/pkg/render"
)

// Render lays out g with r in the given output format. It reports false
// when rendering failed. Renderer failures are logged as warnings, anything
// else, such as an invalid format, as an error.
func (g *Graph) Render(ctx context.Context, r render.Renderer, format string) ([]byte, bool) {
	out, err := r.Render(ctx, g.Bytes(), format)
	if err != nil {
		logger := logging.FromContext(ctx)
		if errors.IsRenderFailure(err) {
			logger.Warn("Unable to render Graphviz dot graph", "graph", g.UID, "format", format, "err", err)
		} else {
			logger.Error("Unable to render Graphviz dot graph", "graph", g.UID, "format", format, "err", err)
		}
		return nil, false
	}
	return out, true
}

// RenderToFile renders g and writes the result to path, creating parent
// directories as needed. It reports whether a file was written.
func (g *Graph) RenderToFile(ctx context.Context, r render.Renderer, path, format string) bool {
	out, ok := g.Render(ctx, r, format)
	if !ok {
		return false
	}
	logger := logging.FromContext(ctx)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Warn("Unable to write graph", "path", path, "err", err)
		return false
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		logger.Warn("Unable to write graph", "path", path, "err", err)
		return false
	}
	return true
}
