package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/matzehuels/docgraph/pkg/errors"
)

// write stores the DOT source, the rendered image and the HTML fragment
// of one graph. Only file system errors are returned.
func (r *Runner) write(ctx context.Context, b built, opts Options) (Output, error) {
	g := b.graph
	out := Output{
		Directive: b.directive,
		UID:       g.UID,
		Title:     g.Title,
		Nodes:     len(g.Nodes),
		Edges:     len(g.Edges),
		Source:    g.UID + ".dot",
		Image:     g.UID + "." + opts.Format,
		Fragment:  g.UID + ".html",
	}

	if err := writeFile(opts.OutDir, out.Source, g.Bytes()); err != nil {
		return out, err
	}
	out.Rendered = g.RenderToFile(ctx, r.Renderer, filepath.Join(opts.OutDir, out.Image), opts.Format)

	fragment := g.ToHTML(ctx, r.Renderer, out.Image, opts.Center)
	if err := writeFile(opts.OutDir, out.Fragment, []byte(fragment+"\n")); err != nil {
		return out, err
	}
	return out, nil
}

func writeFile(dir, name string, data []byte) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
