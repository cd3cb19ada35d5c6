package render_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/matzehuels/docgraph/pkg/cache"
	"github.com/matzehuels/docgraph/pkg/errors"
	"github.com/matzehuels/docgraph/pkg/render"
	"github.com/matzehuels/docgraph/pkg/render/rendertest"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"dot - graphviz version 2.43.0 (0)\n", "2.43.0"},
		{"dot - Graphviz version 2.26.3 (20100126.1600)", "2.26.3"},
		{"dot version 1.16 (Mon Jul 7 2008)", "1.16"},
		{"dot - graphviz version 12.2.1 (20241206.2353)", "12.2.1"},
		{"command not found", "unknown"},
		{"", "unknown"},
	}
	for _, tt := range tests {
		if got := render.ParseVersion(tt.output).String(); got != tt.want {
			t.Errorf("ParseVersion(%q) = %s, want %s", tt.output, got, tt.want)
		}
	}
}

func TestVersionAtLeast(t *testing.T) {
	tests := []struct {
		v     render.Version
		parts []int
		want  bool
	}{
		{render.Version{2, 43, 0}, []int{2}, true},
		{render.Version{2}, []int{2}, true},
		{render.Version{1, 16}, []int{2}, false},
		{render.Unknown, []int{2}, false},
		{render.Version{10}, []int{2, 43}, true},
		{render.Version{2}, []int{2, 0}, false},
	}
	for _, tt := range tests {
		if got := tt.v.AtLeast(tt.parts...); got != tt.want {
			t.Errorf("%v.AtLeast(%v) = %v, want %v", tt.v, tt.parts, got, tt.want)
		}
	}
}

func TestChain(t *testing.T) {
	ctx := context.Background()
	missing := rendertest.Unavailable()
	svgOnly := rendertest.New(render.Version{2, 40}, map[string]string{"svg": "<svg/>"})
	full := rendertest.New(render.Version{2, 43}, map[string]string{"svg": "full", "cmapx": "<map/>"})

	c := render.Chain{missing, svgOnly, full}

	out, err := c.Render(ctx, []byte("digraph g {}"), "svg")
	if err != nil || string(out) != "<svg/>" {
		t.Errorf("Render(svg) = %q, %v", out, err)
	}
	out, err = c.Render(ctx, []byte("digraph g {}"), "cmapx")
	if err != nil || string(out) != "<map/>" {
		t.Errorf("Render(cmapx) = %q, %v", out, err)
	}
	if _, err := c.Render(ctx, []byte("digraph g {}"), "gif"); !errors.Is(err, errors.ErrCodeUnsupportedFormat) {
		t.Errorf("Render(gif) error = %v, want UNSUPPORTED_FORMAT", err)
	}
	if got := c.Version(ctx).String(); got != "2.40" {
		t.Errorf("Version() = %s, want first known version 2.40", got)
	}
	if got := c.Name(); got != "missing|fake|fake" {
		t.Errorf("Name() = %q", got)
	}
}

func TestChainStopsOnToolFailure(t *testing.T) {
	broken := &rendertest.Fake{Err: errors.New(errors.ErrCodeToolFailed, "syntax error"), ID: "broken"}
	ok := rendertest.New(render.Version{2}, map[string]string{"gif": "GIF89a"})

	_, err := render.Chain{broken, ok}.Render(context.Background(), nil, "gif")
	if !errors.Is(err, errors.ErrCodeToolFailed) {
		t.Errorf("error = %v, want TOOL_FAILED", err)
	}
	if len(ok.Calls()) != 0 {
		t.Error("a failing dot run should not fall through to the next renderer")
	}
}

func TestEmptyChain(t *testing.T) {
	if _, err := (render.Chain{}).Render(context.Background(), nil, "gif"); !errors.Is(err, errors.ErrCodeToolUnavailable) {
		t.Errorf("error = %v, want TOOL_UNAVAILABLE", err)
	}
}

func TestCached(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fake := rendertest.New(render.Version{2, 43}, map[string]string{"gif": "GIF89a"})
	r := render.NewCached(fake, fc, nil, time.Hour)

	src := []byte("digraph g {}")
	for i := range 3 {
		out, err := r.Render(ctx, src, "gif")
		if err != nil || string(out) != "GIF89a" {
			t.Fatalf("Render() #%d = %q, %v", i, out, err)
		}
	}
	if n := len(fake.Calls()); n != 1 {
		t.Errorf("inner renderer called %d times, want 1", n)
	}

	if _, err := r.Render(ctx, []byte("digraph h {}"), "gif"); err != nil {
		t.Fatal(err)
	}
	if n := len(fake.Calls()); n != 2 {
		t.Errorf("different source should miss the cache; calls = %d", n)
	}
}

func TestCachedDoesNotStoreFailures(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fake := rendertest.Unavailable()
	r := render.NewCached(fake, fc, nil, 0)

	for range 2 {
		if _, err := r.Render(ctx, []byte("x"), "gif"); err == nil {
			t.Fatal("expected error")
		}
	}
	if n := len(fake.Calls()); n != 2 {
		t.Errorf("failures must not be cached; calls = %d", n)
	}
}

func TestExecMissingCommand(t *testing.T) {
	ctx := context.Background()
	e := render.NewExec("docgraph-no-such-dot-binary")

	_, err := e.Render(ctx, []byte("digraph g {}"), "gif")
	if !errors.Is(err, errors.ErrCodeToolUnavailable) {
		t.Errorf("Render() error = %v, want TOOL_UNAVAILABLE", err)
	}
	if v := e.Version(ctx); !v.IsUnknown() {
		t.Errorf("Version() = %v, want unknown", v)
	}
}

func TestExecRejectsBadFormat(t *testing.T) {
	_, err := render.NewExec("").Render(context.Background(), nil, "gif -o /tmp/x")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestRunDot(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}
	stdout, stderr, err := render.RunDot(context.Background(), "cat", nil, []byte("digraph g {}"))
	if err != nil {
		t.Fatalf("RunDot() error: %v", err)
	}
	if string(stdout) != "digraph g {}" || len(stderr) != 0 {
		t.Errorf("RunDot() = %q, %q", stdout, stderr)
	}
}

func TestRunDotFailure(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not available")
	}
	_, _, err := render.RunDot(context.Background(), "false", nil, nil)
	if !errors.Is(err, errors.ErrCodeToolFailed) {
		t.Errorf("error = %v, want TOOL_FAILED", err)
	}
}

// fakeDotScript writes an executable that prints banner to stderr, like
// `dot -V` does.
func fakeDotScript(t *testing.T, banner string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "dot")
	script := "#!/bin/sh\necho '" + banner + "' >&2\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExecVersionBanners(t *testing.T) {
	tests := []struct {
		banner string
		want   string
	}{
		{"dot - Graphviz version 2.38.0 (20140413.2041)", "2.38.0"},
		{"dot - graphviz version 2.43.0 (0)", "2.43.0"},
		{"dot version 1.16 (Mon Jul 7 2008)", "1.16"},
		{"not a version banner", "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			e := render.NewExec(fakeDotScript(t, tt.banner))
			if got := e.Version(context.Background()).String(); got != tt.want {
				t.Errorf("Version() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestExecWithGraphviz(t *testing.T) {
	if _, err := exec.LookPath("dot"); err != nil {
		t.Skip("Graphviz not installed")
	}
	ctx := context.Background()
	e := render.NewExec("dot")
	if !e.Version(ctx).AtLeast(1) {
		t.Errorf("Version() = %v, want a detected version", e.Version(ctx))
	}
	out, err := e.Render(ctx, []byte("digraph g { a -> b }"), "cmapx")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if len(out) == 0 {
		t.Error("Render() returned no output")
	}
}

func TestEmbeddedUnsupportedFormat(t *testing.T) {
	_, err := render.NewEmbedded().Render(context.Background(), []byte("digraph g {}"), "cmapx")
	if !errors.Is(err, errors.ErrCodeUnsupportedFormat) {
		t.Errorf("error = %v, want UNSUPPORTED_FORMAT", err)
	}
}
