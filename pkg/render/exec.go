package render

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/docgraph/pkg/errors"
	"github.com/matzehuels/docgraph/pkg/logging"
	"github.com/matzehuels/docgraph/pkg/observability"
)

// DefaultCommand is the layout tool run by [Exec] when none is configured.
const DefaultCommand = "dot"

// Exec renders by running the dot command line tool.
type Exec struct {
	command string

	versionOnce sync.Once
	version     Version
}

// NewExec creates a renderer for command, or [DefaultCommand] when empty.
func NewExec(command string) *Exec {
	if command == "" {
		command = DefaultCommand
	}
	return &Exec{command: command}
}

// Name returns the command.
func (e *Exec) Name() string {
	return e.command
}

// Render runs `<command> -T<format>` with src on stdin. Anything dot writes
// to stderr is logged as a warning; the output is still returned.
func (e *Exec) Render(ctx context.Context, src []byte, format string) ([]byte, error) {
	if err := errors.ValidateFormat(format); err != nil {
		return nil, err
	}

	observability.Pipeline().OnRenderStart(ctx, e.Name(), format)
	start := time.Now()
	stdout, stderr, err := RunDot(ctx, e.command, []string{"-T" + format}, src)
	observability.Pipeline().OnRenderComplete(ctx, e.Name(), format, len(stdout), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if msg := strings.TrimSpace(string(stderr)); msg != "" {
		logging.FromContext(ctx).Warn("Graphviz dot warning(s)", "output", msg)
	}
	return stdout, nil
}

// Version runs `<command> -V` on first use and caches the result for the
// lifetime of e. A missing tool yields [Unknown].
func (e *Exec) Version(ctx context.Context) Version {
	e.versionOnce.Do(func() {
		e.version = Unknown
		stdout, stderr, err := RunDot(ctx, e.command, []string{"-V"}, nil)
		if err != nil {
			logging.FromContext(ctx).Debug("dot version detection failed", "err", err)
			return
		}
		// dot prints its version on stderr; some builds use stdout.
		if v := ParseVersion(string(stderr)); !v.IsUnknown() {
			e.version = v
		} else {
			e.version = ParseVersion(string(stdout))
		}
		logging.FromContext(ctx).Info("Detected dot version", "version", e.version)
	})
	return e.version
}

// RunDot runs command with args, feeding it stdin and collecting both
// output streams. It blocks until the process exits or ctx is done.
//
// A command that cannot be found or started fails with TOOL_UNAVAILABLE;
// one that exits unsuccessfully fails with TOOL_FAILED and the captured
// stderr in the message.
func RunDot(ctx context.Context, command string, args []string, stdin []byte) (stdout, stderr []byte, err error) {
	path, err := exec.LookPath(command)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeToolUnavailable, err,
			"%s not found; install Graphviz (brew install graphviz, apt install graphviz)", command)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = bytes.NewReader(stdin)
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			return out.Bytes(), errBuf.Bytes(), errors.Wrap(errors.ErrCodeToolFailed, err,
				"%s %s: %s", command, strings.Join(args, " "), strings.TrimSpace(errBuf.String()))
		}
		return nil, nil, errors.Wrap(errors.ErrCodeToolUnavailable, err, "cannot start %s", command)
	}
	return out.Bytes(), errBuf.Bytes(), nil
}

var _ Renderer = (*Exec)(nil)
