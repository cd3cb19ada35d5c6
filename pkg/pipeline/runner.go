package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/docgraph/pkg/apidoc"
	"github.com/matzehuels/docgraph/pkg/dot"
	"github.com/matzehuels/docgraph/pkg/errors"
	"github.com/matzehuels/docgraph/pkg/graphs"
	"github.com/matzehuels/docgraph/pkg/logging"
	"github.com/matzehuels/docgraph/pkg/observability"
	"github.com/matzehuels/docgraph/pkg/render"
)

// Runner executes graph directives against a documentation index.
//
// A Runner holds no per-run state, so one Runner may serve concurrent
// Execute calls.
type Runner struct {
	Renderer render.Renderer
	// Linker resolves hrefs. Nil uses an [apidoc.PageLinker] over the
	// index passed to Execute.
	Linker dot.Linker
	// Progress receives stage notifications. Nil discards them.
	Progress Progress
}

// NewRunner creates a runner that renders with r.
func NewRunner(r render.Renderer) *Runner {
	return &Runner{Renderer: r}
}

// built is a graph waiting to be rendered.
type built struct {
	directive Directive
	graph     *dot.Graph
}

// Execute builds, renders and writes one graph per directive.
//
// Invalid directives fail the run before anything is written. Directives
// whose targets resolve to nothing are skipped with a warning. Renderer
// failures never fail the run.
func (r *Runner) Execute(ctx context.Context, idx *apidoc.Index, directives []Directive, opts Options) (*Result, error) {
	if err := opts.setDefaults(); err != nil {
		return nil, err
	}
	for _, d := range directives {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create output directory %s", opts.OutDir)
	}

	res := &Result{RunID: uuid.NewString()}
	logger := logging.FromContext(ctx).With("run", res.RunID[:8])
	ctx = logging.WithLogger(ctx, logger)

	progress := r.Progress
	if progress == nil {
		progress = NopProgress{}
	}
	linker := r.Linker
	if linker == nil {
		linker = apidoc.NewPageLinker(idx)
	}

	// Resolve
	progress.Start(StageResolve, len(directives))
	type resolved struct {
		directive Directive
		docs      []*apidoc.Doc
	}
	var work []resolved
	for _, d := range directives {
		progress.Step(string(d.Kind))
		docs, err := resolveTargets(ctx, idx, d.Targets)
		if err != nil {
			return nil, err
		}
		if len(docs) == 0 {
			logger.Warn("Skipping graph with no targets", "kind", d.Kind)
			res.Stats.Skipped++
			continue
		}
		if d.Current != "" {
			if d.Options.Current = idx.Lookup(d.Current); d.Options.Current == nil {
				logger.Warn("Current entity is not documented", "current", d.Current)
			}
		}
		work = append(work, resolved{d, docs})
	}
	progress.End(StageResolve)

	// Build
	buildStart := time.Now()
	builder := graphs.NewBuilder(dot.NewContext(), idx, linker, r.Renderer.Version(ctx))
	hooks := observability.Pipeline()

	progress.Start(StageBuild, len(work))
	var pending []built
	for _, w := range work {
		progress.Step(string(w.directive.Kind))
		start := time.Now()
		hooks.OnBuildStart(ctx, string(w.directive.Kind), len(w.docs))
		g, err := builder.Build(ctx, w.directive.Kind, w.docs, w.directive.Options)
		if err != nil {
			hooks.OnBuildComplete(ctx, string(w.directive.Kind), "", 0, 0, time.Since(start), err)
			return nil, err
		}
		g.Caption = w.directive.Caption
		g.Link(linker)
		hooks.OnBuildComplete(ctx, string(w.directive.Kind), g.UID, len(g.Nodes), len(g.Edges), time.Since(start), nil)
		logger.Debug("Built graph", "uid", g.UID, "nodes", len(g.Nodes), "edges", len(g.Edges))
		pending = append(pending, built{w.directive, g})
	}
	progress.End(StageBuild)
	res.Stats.BuildTime = time.Since(buildStart)

	// Render
	renderStart := time.Now()
	progress.Start(StageRender, len(pending))
	for _, b := range pending {
		progress.Step(b.graph.Title)
		out, err := r.write(ctx, b, opts)
		if err != nil {
			return nil, err
		}
		res.Outputs = append(res.Outputs, out)
	}
	progress.End(StageRender)
	res.Stats.RenderTime = time.Since(renderStart)

	// Index
	if !opts.NoIndex {
		progress.Start(StageIndex, 1)
		progress.Step(IndexFile)
		if err := writeIndex(opts.OutDir, res.Outputs); err != nil {
			return nil, err
		}
		progress.End(StageIndex)
	}

	logger.Info("Generated graphs", "graphs", len(res.Outputs), "rendered", res.Rendered(), "skipped", res.Stats.Skipped)
	return res, nil
}
