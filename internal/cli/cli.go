// Package cli implements the docgraph command-line interface.
//
// # Commands
//
//   - generate: build, render and write the graphs configured for a model
//   - render: render a DOT file with the configured renderer
//   - serve: generate into a directory and serve it over HTTP, optionally
//     regenerating when the model changes
//   - dot-version: print the detected Graphviz version
//   - cache: inspect and clear the render cache
//
// # Verbosity
//
// -v and -q may be repeated; their difference selects the log level and
// the progress display. --debug additionally logs pipeline, cache and
// server events.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/docgraph/pkg/buildinfo"
	"github.com/matzehuels/docgraph/pkg/cache"
	"github.com/matzehuels/docgraph/pkg/config"
	"github.com/matzehuels/docgraph/pkg/logging"
	"github.com/matzehuels/docgraph/pkg/observability"
	"github.com/matzehuels/docgraph/pkg/render"
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	// Out receives command output, Err receives logs and progress.
	Out io.Writer
	Err io.Writer

	// Renderer replaces the configured engine when set.
	Renderer render.Renderer

	verbose    int
	quiet      int
	debug      bool
	configPath string
}

// New creates a CLI writing output to out and logs to errw.
func New(out, errw io.Writer) *CLI {
	return &CLI{
		Logger: logging.New(errw, logging.LevelForVerbosity(0, false)),
		Out:    out,
		Err:    errw,
	}
}

// Verbosity is the number of -v flags minus the number of -q flags.
func (c *CLI) Verbosity() int {
	return c.verbose - c.quiet
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "docgraph",
		Short: "docgraph draws Graphviz diagrams of API documentation",
		Long: `docgraph builds package trees, class hierarchies, import graphs and call graphs
from an API documentation model, renders them with Graphviz and writes HTML
fragments with clickable image maps.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)
	root.SetErr(c.Err)

	flags := root.PersistentFlags()
	flags.CountVarP(&c.verbose, "verbose", "v", "show more output (repeatable)")
	flags.CountVarP(&c.quiet, "quiet", "q", "show less output (repeatable)")
	flags.BoolVar(&c.debug, "debug", false, "log debug output including pipeline and cache events")
	flags.StringVar(&c.configPath, "config", "", "config file (default: $DOCGRAPH_CONFIG, ./docgraph.toml, $XDG_CONFIG_HOME/docgraph/config.toml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.dotVersionCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup applies verbosity, loads the configuration and attaches the logger
// to the command context.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	c.Logger.SetLevel(logging.LevelForVerbosity(c.Verbosity(), c.debug))
	if c.debug {
		observability.NewLogHooks(c.Logger).Register()
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	if cfg.Path != "" {
		c.Logger.Debug("Loaded config", "path", cfg.Path)
	}

	cmd.SetContext(logging.WithLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Renderer Factory
// =============================================================================

// newRenderer builds the configured renderer, wrapped in the render cache
// unless noCache is set. The returned closer releases the cache.
func (c *CLI) newRenderer(ctx context.Context, noCache bool) (render.Renderer, func() error, error) {
	cfg := c.Config
	if cfg == nil {
		cfg = config.Default()
	}

	r := c.Renderer
	switch {
	case r != nil:
	case cfg.Render.Engine == config.EngineExec:
		r = render.NewExec(cfg.Render.Command)
	case cfg.Render.Engine == config.EngineEmbedded:
		r = render.NewEmbedded()
	default:
		r = render.Chain{render.NewExec(cfg.Render.Command), render.NewEmbedded()}
	}

	if noCache || cfg.Cache.Backend == config.BackendNone {
		return r, func() error { return nil }, nil
	}

	store, err := c.newCache(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	keyer := cache.NewDefaultKeyer()
	if cfg.Cache.Namespace != "" {
		keyer = cache.NewScopedKeyer(keyer, cfg.Cache.Namespace)
	}
	return render.NewCached(r, store, keyer, cfg.Cache.TTL), store.Close, nil
}

// newCache opens the configured cache backend. An unreachable redis server
// is logged and replaced by a null cache so rendering still works.
func (c *CLI) newCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.Cache.RedisAddr})
		if err != nil {
			c.Logger.Warn("Render cache disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return rc, nil
	case config.BackendNone:
		return cache.NewNullCache(), nil
	}

	dir, err := cfg.CacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// Run builds the root command and executes it with ctx.
func Run(ctx context.Context, args []string) error {
	c := New(os.Stdout, os.Stderr)
	root := c.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
