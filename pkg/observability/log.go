package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event as a debug message.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks creates hooks that log to l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{Logger: l}
}

// Register installs h for every event category.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetServerHooks(h)
}

func (h *LogHooks) OnBuildStart(_ context.Context, kind string, targets int) {
	h.Logger.Debug("build start", "kind", kind, "targets", targets)
}

func (h *LogHooks) OnBuildComplete(_ context.Context, kind, uid string, nodes, edges int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("build failed", "kind", kind, "err", err)
		return
	}
	h.Logger.Debug("build done", "kind", kind, "graph", uid, "nodes", nodes, "edges", edges, "took", d.Round(time.Microsecond))
}

func (h *LogHooks) OnRenderStart(_ context.Context, renderer, format string) {
	h.Logger.Debug("render start", "renderer", renderer, "format", format)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, renderer, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("render failed", "renderer", renderer, "format", format, "err", err)
		return
	}
	h.Logger.Debug("render done", "renderer", renderer, "format", format, "bytes", size, "took", d.Round(time.Microsecond))
}

func (h *LogHooks) OnCacheHit(_ context.Context, format string) {
	h.Logger.Debug("cache hit", "format", format)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, format string) {
	h.Logger.Debug("cache miss", "format", format)
}

func (h *LogHooks) OnCacheSet(_ context.Context, format string, size int) {
	h.Logger.Debug("cache set", "format", format, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Debug("response", "method", method, "path", path, "status", status, "took", d.Round(time.Microsecond))
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ ServerHooks   = (*LogHooks)(nil)
)
