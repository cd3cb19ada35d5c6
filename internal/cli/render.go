package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/docgraph/pkg/errors"
	"github.com/matzehuels/docgraph/pkg/logging"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file, default: input with the format extension
	format  string // image format, default: render.format from config
	noCache bool
}

// renderCommand creates the render command for rendering raw DOT files.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render FILE.dot",
		Short: "Render a DOT file with the configured renderer",
		Long: `Render lays out a DOT file with the configured renderer chain and render
cache. Unlike generate, a rendering failure is an error.`,
		Example: `  docgraph render graphs/import_graph.dot -T svg
  docgraph render tree.dot -o tree.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			input := args[0]

			format := opts.format
			if format == "" {
				format = c.Config.Render.Format
			}
			if err := errors.ValidateFormat(format); err != nil {
				return err
			}
			output := opts.output
			if output == "" {
				output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
			}

			src, err := os.ReadFile(input)
			if err != nil {
				return errors.Wrap(errors.ErrCodeNotFound, err, "read %s", input)
			}

			r, closeCache, err := c.newRenderer(ctx, opts.noCache)
			if err != nil {
				return err
			}
			defer closeCache()

			progress := logging.NewProgress(logging.FromContext(ctx))
			data, err := r.Render(ctx, src, format)
			if err != nil {
				return err
			}
			progress.Done("Rendered " + input)

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", output)
			}
			if c.Verbosity() >= 0 {
				printSuccess(c.Out, "Rendered %s with %s", input, r.Name())
				printFile(c.Out, output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: FILE with the format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "T", "", "output format (default: render.format from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	return cmd
}

// dotVersionCommand prints the renderer name and detected version.
func (c *CLI) dotVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dot-version",
		Short: "Print the detected Graphviz version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, closeCache, err := c.newRenderer(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer closeCache()

			v := r.Version(cmd.Context())
			printKeyValue(c.Out, "renderer", r.Name())
			printKeyValue(c.Out, "version", v.String())
			if v.IsUnknown() {
				printWarning(c.Out, "Graphviz dot was not found; install it or set render.command")
			} else if !v.AtLeast(2) {
				printWarning(c.Out, "UML package trees need dot 2.0 or later")
			}
			return nil
		},
	}
}
