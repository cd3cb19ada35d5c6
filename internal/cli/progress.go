package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/docgraph/pkg/pipeline"
)

// progressMode selects how run progress is shown.
type progressMode int

const (
	// modeHide shows nothing.
	modeHide progressMode = iota
	// modeSimple prints "[ 42%] message" lines without styling.
	modeSimple
	// modeList prints styled "[ 42%] message" lines.
	modeList
	// modeBar draws a single updating progress bar.
	modeBar
)

func (m progressMode) String() string {
	return [...]string{"hide", "simple", "list", "bar"}[m]
}

// selectProgressMode picks the display for a verbosity level and output.
func selectProgressMode(verbosity int, terminal bool) progressMode {
	switch {
	case verbosity < 0:
		return modeHide
	case verbosity >= 2:
		return modeList
	case terminal:
		return modeBar
	default:
		return modeSimple
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// progressReporter turns stage notifications into one percentage across
// the whole run, weighting each stage by pipeline.Stage.Weight.
type progressReporter struct {
	mode    progressMode
	w       io.Writer
	summary bool

	total    int
	finished int
	stage    pipeline.Stage
	steps    int
	step     int

	stageStart time.Time
	timings    []stageTiming

	program *tea.Program
	exited  chan struct{}
	mu      sync.Mutex
}

// newProgressReporter creates a reporter. With summary set, Finish prints
// a table of stage timings.
func newProgressReporter(w io.Writer, mode progressMode, summary bool) *progressReporter {
	p := &progressReporter{mode: mode, w: w, summary: summary}
	for _, s := range pipeline.Stages {
		p.total += s.Weight
	}
	if mode == modeBar {
		p.exited = make(chan struct{})
		p.program = tea.NewProgram(newBarModel(time.Now()),
			tea.WithOutput(w), tea.WithInput(nil), tea.WithoutSignalHandler())
		go func() {
			defer close(p.exited)
			_, _ = p.program.Run()
		}()
	}
	return p
}

// percent is the completed share of the run, between 0 and 1.
func (p *progressReporter) percent() float64 {
	if p.total == 0 {
		return 0
	}
	done := float64(p.finished)
	if p.steps > 0 {
		done += float64(p.stage.Weight) * float64(min(p.step, p.steps)) / float64(p.steps)
	}
	return min(1, done/float64(p.total))
}

func (p *progressReporter) Start(stage pipeline.Stage, steps int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stage, p.steps, p.step = stage, steps, 0
	p.stageStart = time.Now()
	p.emit(stage.Name)
}

func (p *progressReporter) Step(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.step++
	p.emit(message)
}

func (p *progressReporter) End(stage pipeline.Stage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finished += stage.Weight
	p.steps, p.step = 0, 0
	p.timings = append(p.timings, stageTiming{stage.Name, time.Since(p.stageStart)})
	if p.mode == modeBar {
		p.program.Send(barMsg{percent: p.percent(), message: stage.Name})
	}
}

// Finish stops the bar and prints the timing summary when requested.
func (p *progressReporter) Finish() {
	if p.program != nil {
		p.program.Send(barDoneMsg{})
		<-p.exited
	}
	if p.summary && p.mode != modeHide && len(p.timings) > 0 {
		printTimings(p.w, p.timings)
	}
}

func (p *progressReporter) emit(message string) {
	pct := int(p.percent() * 100)
	switch p.mode {
	case modeSimple:
		fmt.Fprintf(p.w, "[%3d%%] %s\n", pct, message)
	case modeList:
		fmt.Fprintf(p.w, "%s %s\n", stylePercent.Render(fmt.Sprintf("[%3d%%]", pct)), message)
	case modeBar:
		p.program.Send(barMsg{percent: p.percent(), message: message})
	}
}

// =============================================================================
// Bar Model
// =============================================================================

const barWidth = 40

type barMsg struct {
	percent float64
	message string
}

type barDoneMsg struct{}

// barModel is the bubbletea model of the progress bar.
type barModel struct {
	percent float64
	message string
	start   time.Time
	now     func() time.Time
	done    bool
}

func newBarModel(start time.Time) barModel {
	return barModel{start: start, now: time.Now}
}

func (m barModel) Init() tea.Cmd {
	return nil
}

func (m barModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case barMsg:
		m.percent, m.message = msg.percent, msg.message
	case barDoneMsg:
		m.done = true
		m.percent = 1
		return m, tea.Quit
	}
	return m, nil
}

func (m barModel) View() string {
	filled := int(m.percent * barWidth)
	bar := styleBarDone.Render(strings.Repeat("█", filled)) +
		styleBarTodo.Render(strings.Repeat("░", barWidth-filled))

	elapsed := m.now().Sub(m.start)
	timing := "elapsed " + formatDuration(elapsed)
	if m.percent > 0 && m.percent < 1 {
		remaining := time.Duration(float64(elapsed) * (1 - m.percent) / m.percent)
		timing += ", ~" + formatDuration(remaining) + " left"
	}

	line := fmt.Sprintf("%s %s %s", bar, stylePercent.Render(fmt.Sprintf("%3d%%", int(m.percent*100))), StyleDim.Render(timing))
	if m.message != "" && !m.done {
		line += "\n" + StyleDim.Render(truncate(m.message, barWidth+20))
	}
	return line + "\n"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

var _ pipeline.Progress = (*progressReporter)(nil)
