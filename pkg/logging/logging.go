// Package logging configures the charmbracelet/log loggers used by docgraph
// and carries them through context.Context.
//
// Library packages never create loggers of their own. They call [FromContext]
// so that warnings about the external layout tool, missing profile data and
// similar best-effort failures end up wherever the caller sent its logs.
//
// # Verbosity
//
// The command-line front end counts -v and -q flags into a single verbosity
// number. [LevelForVerbosity] maps it to a log level:
//
//	verbosity   shown
//	<= -3       fatal only
//	-2          errors
//	-1 .. 2     warnings and errors
//	>= 3        info, warnings and errors
//
// Debug output is enabled separately with --debug.
package logging

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// LevelForVerbosity maps a -v/-q verbosity count to a log level.
func LevelForVerbosity(verbosity int, debug bool) log.Level {
	switch {
	case debug:
		return log.DebugLevel
	case verbosity <= -3:
		return log.FatalLevel
	case verbosity == -2:
		return log.ErrorLevel
	case verbosity >= 3:
		return log.InfoLevel
	default:
		return log.WarnLevel
	}
}

// Progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to Done will race.
type Progress struct {
	logger *log.Logger
	start  time.Time
}

// NewProgress creates a progress tracker that captures the current time as start.
func NewProgress(l *log.Logger) *Progress {
	return &Progress{logger: l, start: time.Now()}
}

// Elapsed returns the time since the tracker was created.
func (p *Progress) Elapsed() time.Duration {
	return time.Since(p.start)
}

// Done logs msg along with the elapsed time since the tracker was created.
// Example output: "Wrote 4 graphs (1.234s)"
func (p *Progress) Done(msg string) {
	p.logger.Infof("%s (%s)", msg, p.Elapsed().Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// WithLogger returns a new context with the given logger attached.
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func FromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return log.Default()
	}
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
