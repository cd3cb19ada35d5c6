// Package rendertest provides a scripted [render.Renderer] for tests.
package rendertest

import (
	"context"
	"sync"

	"github.com/matzehuels/docgraph/pkg/errors"
	"github.com/matzehuels/docgraph/pkg/render"
)

// Call records one Render invocation.
type Call struct {
	Format string
	Source string
}

// Fake returns canned output per format. Formats without output fail with
// Err, or UNSUPPORTED_FORMAT when Err is nil.
type Fake struct {
	Outputs map[string][]byte
	Err     error
	Ver     render.Version
	ID      string

	mu    sync.Mutex
	calls []Call
}

// New creates a fake reporting version ver that renders each format to
// the given output.
func New(ver render.Version, outputs map[string]string) *Fake {
	f := &Fake{Outputs: make(map[string][]byte), Ver: ver, ID: "fake"}
	for k, v := range outputs {
		f.Outputs[k] = []byte(v)
	}
	return f
}

// Unavailable returns a fake that behaves like a missing dot binary.
func Unavailable() *Fake {
	return &Fake{
		Err: errors.New(errors.ErrCodeToolUnavailable, "dot not found"),
		Ver: render.Unknown,
		ID:  "missing",
	}
}

func (f *Fake) Name() string { return f.ID }

func (f *Fake) Version(context.Context) render.Version {
	if f.Ver == nil {
		return render.Unknown
	}
	return f.Ver
}

func (f *Fake) Render(_ context.Context, src []byte, format string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Format: format, Source: string(src)})
	f.mu.Unlock()

	if out, ok := f.Outputs[format]; ok {
		return out, nil
	}
	if f.Err != nil {
		return nil, f.Err
	}
	return nil, errors.New(errors.ErrCodeUnsupportedFormat, "fake cannot produce %q", format)
}

// Calls returns the recorded Render calls in order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

var _ render.Renderer = (*Fake)(nil)
