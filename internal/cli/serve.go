package cli

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/docgraph/internal/watch"
	"github.com/matzehuels/docgraph/pkg/config"
	"github.com/matzehuels/docgraph/pkg/errors"
	"github.com/matzehuels/docgraph/pkg/logging"
	"github.com/matzehuels/docgraph/pkg/observability"
	"github.com/matzehuels/docgraph/pkg/pipeline"
)

const defaultAddr = "127.0.0.1:8080"

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		opts     generateOpts
		addr     string
		watching bool
	)

	cmd := &cobra.Command{
		Use:   "serve MODEL",
		Short: "Generate graphs and preview them in a browser",
		Long: `Serve generates the graphs for MODEL like generate does and serves the output
directory over HTTP. With --watch the graphs are regenerated whenever the
model or the config file changes.`,
		Example: `  docgraph serve api.yaml --watch
  docgraph serve api.yaml --addr :9000 -k import-graph -t 'epydoc.*'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := logging.FromContext(ctx)
			model := args[0]
			opts.centerSet = cmd.Flags().Changed("center")

			if _, err := c.generate(ctx, model, &opts); err != nil {
				return err
			}
			srv := newServer(c.pipelineOptions(&opts).OutDir)

			if watching {
				paths := []string{model}
				if c.Config.Path != "" {
					paths = append(paths, c.Config.Path)
				}
				w := watch.New(func(ctx context.Context, _ string) {
					srv.regenerate(func() {
						if err := c.rebuild(ctx, model, &opts); err != nil {
							logger.Error("Regeneration failed", "err", errors.UserMessage(err))
						}
					})
				}, paths...)
				go func() {
					if err := w.Run(ctx); err != nil && ctx.Err() == nil {
						logger.Error("Watcher stopped", "err", err)
					}
				}()
			}

			return srv.listen(ctx, addr, c)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVarP(&watching, "watch", "w", false, "regenerate when the model or config changes")
	return cmd
}

// rebuild reloads the configuration and regenerates the graphs for model.
// On a config error the previous configuration and output are kept.
func (c *CLI) rebuild(ctx context.Context, model string, o *generateOpts) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	_, err = c.generate(ctx, model, o)
	return err
}

// server serves a generated output directory.
type server struct {
	dir string

	mu        sync.RWMutex
	generated time.Time
}

func newServer(dir string) *server {
	return &server{dir: dir, generated: time.Now()}
}

// regenerate runs fn while no file is being served.
func (s *server) regenerate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
	s.generated = time.Now()
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(observe)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/graphs/"+pipeline.IndexFile, http.StatusFound)
	})
	r.Get("/healthz", s.handleHealth)
	r.Get("/graphs/{file}", s.handleFile)
	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	generated := s.generated
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":    "ok",
		"generated": generated.UTC().Format(time.RFC3339),
	})
}

func (s *server) handleFile(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	if err := errors.ValidatePath(file); err != nil || strings.Contains(file, "/") {
		http.Error(w, "invalid file name", http.StatusBadRequest)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	// ServeContent rather than ServeFile, which would redirect index.html.
	f, err := os.Open(filepath.Join(s.dir, file))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, file, info.ModTime(), f)
}

// listen serves until ctx is cancelled, then shuts down gracefully.
func (s *server) listen(ctx context.Context, addr string, c *CLI) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	httpSrv := &http.Server{
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	printSuccess(c.Out, "Serving %s on %s", StyleValue.Render(s.dir), StyleTitle.Render("http://"+ln.Addr().String()+"/"))
	printDetail(c.Out, "Press Ctrl+C to stop")

	errc := make(chan error, 1)
	go func() { errc <- httpSrv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
		return ctx.Err()
	}
}

// observe reports requests to the registered server hooks.
func observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.Server()
		start := time.Now()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}
