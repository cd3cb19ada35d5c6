package cli

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/docgraph/pkg/apidoc"
	"github.com/matzehuels/docgraph/pkg/errors"
	"github.com/matzehuels/docgraph/pkg/graphs"
	"github.com/matzehuels/docgraph/pkg/logging"
	"github.com/matzehuels/docgraph/pkg/pipeline"
)

// generateOpts holds the flags shared by generate and serve.
type generateOpts struct {
	out    string
	format string
	center bool
	// centerSet records whether --center was given, so --center=false
	// can override output.center.
	centerSet bool
	noCache   bool
	noIndex   bool

	// A graph given on the command line replaces the configured ones.
	kind       string
	targets    []string
	current    string
	dir        string
	style      string
	addCallers bool
	addCallees bool
	caption    string
}

func (o *generateOpts) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.out, "output", "o", "", "output directory (default: output.dir from config)")
	f.StringVarP(&o.format, "format", "T", "", "image format (default: render.format from config)")
	f.BoolVar(&o.center, "center", false, "center graphs in the HTML fragments (default: output.center from config)")
	f.BoolVar(&o.noCache, "no-cache", false, "disable the render cache")
	f.BoolVar(&o.noIndex, "no-index", false, "do not write "+pipeline.IndexFile)

	f.StringVarP(&o.kind, "kind", "k", "", "graph kind: package-tree, class-tree, import-graph or call-graph")
	f.StringSliceVarP(&o.targets, "target", "t", nil, "dotted name or pattern to draw (repeatable)")
	f.StringVar(&o.current, "current", "", "entity whose page embeds the graph")
	f.StringVar(&o.dir, "dir", "", "layout direction: TB, BT, LR or RL")
	f.StringVar(&o.style, "style", "", "package tree style: uml or tree")
	f.BoolVar(&o.addCallers, "callers", false, "add callers to call graphs")
	f.BoolVar(&o.addCallees, "callees", false, "add callees to call graphs")
	f.StringVar(&o.caption, "caption", "", "caption shown under the graph")
}

// directives returns the graph given by flags, or the configured graphs.
func (c *CLI) directives(o *generateOpts) ([]pipeline.Directive, error) {
	if o.kind != "" {
		kind, err := graphs.ParseKind(o.kind)
		if err != nil {
			return nil, err
		}
		d := pipeline.Directive{
			Kind:    kind,
			Targets: o.targets,
			Current: o.current,
			Caption: o.caption,
			Options: graphs.Options{
				Dir:        o.dir,
				Style:      o.style,
				AddCallers: o.addCallers,
				AddCallees: o.addCallees,
			},
		}
		return []pipeline.Directive{d}, d.Validate()
	}

	var out []pipeline.Directive
	for _, g := range c.Config.Graphs {
		d, err := pipeline.FromConfig(g)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no graphs requested: pass --kind and --target or add [[graph]] entries to the config")
	}
	return out, nil
}

func (c *CLI) pipelineOptions(o *generateOpts) pipeline.Options {
	opts := pipeline.Options{
		OutDir:  c.Config.Output.Dir,
		Format:  c.Config.Render.Format,
		Center:  c.Config.Output.Center,
		NoIndex: o.noIndex,
	}
	if o.out != "" {
		opts.OutDir = o.out
	}
	if o.format != "" {
		opts.Format = o.format
	}
	if o.centerSet {
		opts.Center = o.center
	}
	return opts
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate MODEL",
		Short: "Generate graphs for an API documentation model",
		Long: `Generate builds every requested graph, renders it and writes the DOT source,
the image and an HTML fragment with a clickable image map, plus an index page.

MODEL is a YAML, TOML or JSON file describing the documented entities.
Graphs come from [[graph]] entries in the config file, or from --kind and
--target for a single graph.`,
		Example: `  docgraph generate api.yaml
  docgraph generate api.yaml -k class-tree -t epydoc.apidoc.APIDoc -T svg
  docgraph generate api.yaml -k call-graph -t 'epydoc.docwriter.**' --callers`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.centerSet = cmd.Flags().Changed("center")
			_, err := c.generate(cmd.Context(), args[0], &opts)
			return err
		},
	}
	opts.register(cmd)
	return cmd
}

// generate runs the pipeline for model and prints a summary.
func (c *CLI) generate(ctx context.Context, model string, o *generateOpts) (*pipeline.Result, error) {
	logger := logging.FromContext(ctx)

	directives, err := c.directives(o)
	if err != nil {
		return nil, err
	}

	progress := logging.NewProgress(logger)
	idx, err := apidoc.Load(model)
	if err != nil {
		return nil, err
	}
	progress.Done("Loaded model")

	r, closeCache, err := c.newRenderer(ctx, o.noCache)
	if err != nil {
		return nil, err
	}
	defer closeCache()

	reporter := newProgressReporter(c.Err, selectProgressMode(c.Verbosity(), isTerminal(c.Err)), c.Verbosity() >= 2)
	runner := &pipeline.Runner{Renderer: r, Progress: reporter}
	opts := c.pipelineOptions(o)

	res, err := runner.Execute(ctx, idx, directives, opts)
	reporter.Finish()
	if err != nil {
		return nil, err
	}

	if c.Verbosity() >= 0 {
		c.printResult(res, opts)
	}
	return res, nil
}

func (c *CLI) printResult(res *pipeline.Result, opts pipeline.Options) {
	for _, out := range res.Outputs {
		printInfo(c.Out, "%s", StyleTitle.Render(out.Title))
		printStats(c.Out, out.Nodes, out.Edges, out.Rendered)
		if out.Rendered {
			printFile(c.Out, filepath.Join(opts.OutDir, out.Image))
		}
		printFile(c.Out, filepath.Join(opts.OutDir, out.Fragment))
	}
	if res.Stats.Skipped > 0 {
		printWarning(c.Out, "Skipped %d graph(s) without matching targets", res.Stats.Skipped)
	}
	if failed := len(res.Outputs) - res.Rendered(); failed > 0 {
		printWarning(c.Out, "%d image(s) could not be rendered", failed)
	}
	printSuccess(c.Out, "Generated %s graph(s) in %s",
		StyleNumber.Render(strconv.Itoa(len(res.Outputs))), StyleValue.Render(opts.OutDir))
}
