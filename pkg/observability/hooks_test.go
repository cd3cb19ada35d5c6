package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnBuildStart(ctx, "class-tree", 1)
	p.OnBuildComplete(ctx, "class-tree", "class_hierarchy_for_apidoc", 4, 3, time.Millisecond, nil)
	p.OnRenderStart(ctx, "dot", "gif")
	p.OnRenderComplete(ctx, "dot", "gif", 1024, time.Millisecond, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "gif")
	c.OnCacheMiss(ctx, "cmapx")
	c.OnCacheSet(ctx, "gif", 1024)

	s := NoopServerHooks{}
	s.OnRequest(ctx, "GET", "/")
	s.OnResponse(ctx, "GET", "/", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should return NoopServerHooks by default")
	}

	h := NewLogHooks(log.New(&bytes.Buffer{}))
	h.Register()
	if Pipeline() != PipelineHooks(h) || Cache() != CacheHooks(h) || Server() != ServerHooks(h) {
		t.Error("Register() should install the hooks for every category")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	h := NewLogHooks(log.New(&bytes.Buffer{}))
	SetPipelineHooks(h)
	SetPipelineHooks(nil)
	SetCacheHooks(nil)
	SetServerHooks(nil)

	if Pipeline() != PipelineHooks(h) {
		t.Error("SetPipelineHooks(nil) should keep the current hooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("SetCacheHooks(nil) should keep the no-op hooks")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&buf)
	l.SetLevel(log.DebugLevel)
	h := NewLogHooks(l)
	ctx := context.Background()

	h.OnBuildComplete(ctx, "import-graph", "import_graph", 3, 2, time.Millisecond, nil)
	h.OnRenderComplete(ctx, "dot", "gif", 10, time.Millisecond, errors.New("boom"))
	h.OnCacheHit(ctx, "svg")

	out := buf.String()
	for _, want := range []string{"build done", "import_graph", "render failed", "boom", "cache hit"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
