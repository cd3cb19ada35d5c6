package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/docgraph/pkg/pipeline"
)

func TestSelectProgressMode(t *testing.T) {
	tests := []struct {
		verbosity int
		terminal  bool
		want      progressMode
	}{
		{-1, true, modeHide},
		{-2, false, modeHide},
		{0, false, modeSimple},
		{1, false, modeSimple},
		{0, true, modeBar},
		{1, true, modeBar},
		{2, true, modeList},
		{3, false, modeList},
	}
	for _, tt := range tests {
		if got := selectProgressMode(tt.verbosity, tt.terminal); got != tt.want {
			t.Errorf("selectProgressMode(%d, %v) = %s, want %s", tt.verbosity, tt.terminal, got, tt.want)
		}
	}
}

func TestIsTerminalBuffer(t *testing.T) {
	if isTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
}

// runStages drives p through every stage, with steps steps each.
func runStages(p *progressReporter, steps int) {
	for _, s := range pipeline.Stages {
		p.Start(s, steps)
		for range steps {
			p.Step("step")
		}
		p.End(s)
	}
	p.Finish()
}

func TestProgressSimple(t *testing.T) {
	var buf bytes.Buffer
	runStages(newProgressReporter(&buf, modeSimple, false), 1)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2*len(pipeline.Stages) {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "[  0%] Resolving targets" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[len(lines)-1] != "[100%] step" {
		t.Errorf("last line = %q", lines[len(lines)-1])
	}
}

func TestProgressHide(t *testing.T) {
	var buf bytes.Buffer
	runStages(newProgressReporter(&buf, modeHide, true), 2)
	if buf.Len() != 0 {
		t.Errorf("hidden progress wrote %q", buf.String())
	}
}

func TestProgressSummary(t *testing.T) {
	var buf bytes.Buffer
	runStages(newProgressReporter(&buf, modeList, true), 0)
	out := buf.String()
	for _, want := range []string{"Stage", "Rendering graphs", "Total"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestProgressPercentWeighting(t *testing.T) {
	p := newProgressReporter(&bytes.Buffer{}, modeHide, false)
	total := 0
	for _, s := range pipeline.Stages {
		total += s.Weight
	}

	p.Start(pipeline.StageResolve, 1)
	p.Step("a")
	p.End(pipeline.StageResolve)
	p.Start(pipeline.StageBuild, 2)
	p.Step("b")

	want := (float64(pipeline.StageResolve.Weight) + float64(pipeline.StageBuild.Weight)/2) / float64(total)
	if got := p.percent(); got != want {
		t.Errorf("percent = %v, want %v", got, want)
	}

	// Extra steps never push a stage past its weight.
	p.Step("c")
	p.Step("d")
	want = float64(pipeline.StageResolve.Weight+pipeline.StageBuild.Weight) / float64(total)
	if got := p.percent(); got != want {
		t.Errorf("percent after overflow = %v, want %v", got, want)
	}
}

func TestBarModel(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := newBarModel(start)
	m.now = func() time.Time { return start.Add(2 * time.Second) }

	next, cmd := m.Update(barMsg{percent: 0.5, message: "Rendering import_graph"})
	if cmd != nil {
		t.Error("progress update should not return a command")
	}
	view := next.View()
	for _, want := range []string{" 50%", "elapsed 2s", "~2s left", "Rendering import_graph"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if got := strings.Count(view, "█"); got != barWidth/2 {
		t.Errorf("filled cells = %d, want %d", got, barWidth/2)
	}

	done, cmd := next.Update(barDoneMsg{})
	if cmd == nil {
		t.Error("done message should quit the program")
	}
	view = done.View()
	if !strings.Contains(view, "100%") || strings.Contains(view, "Rendering") {
		t.Errorf("final view = %q", view)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated", 5, "trun…"},
		{"ünïcödé", 4, "ünï…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{1500 * time.Microsecond, "2ms"},
		{1234 * time.Millisecond, "1.23s"},
		{0, "0s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
