package render

import (
	"context"
	"strings"

	"github.com/matzehuels/docgraph/pkg/errors"
	"github.com/matzehuels/docgraph/pkg/logging"
)

// Chain tries each renderer in order. A renderer that is unavailable or
// does not support the format is skipped; any other failure is returned.
type Chain []Renderer

// Name joins the member names with "|".
func (c Chain) Name() string {
	names := make([]string, len(c))
	for i, r := range c {
		names[i] = r.Name()
	}
	return strings.Join(names, "|")
}

// Render returns the output of the first renderer that can produce format.
func (c Chain) Render(ctx context.Context, src []byte, format string) ([]byte, error) {
	var lastErr error
	for _, r := range c {
		out, err := r.Render(ctx, src, format)
		if err == nil {
			return out, nil
		}
		if !errors.Is(err, errors.ErrCodeToolUnavailable) && !errors.Is(err, errors.ErrCodeUnsupportedFormat) {
			return nil, err
		}
		logging.FromContext(ctx).Debug("renderer skipped", "renderer", r.Name(), "format", format, "err", err)
		lastErr = err
	}
	if lastErr == nil {
		return nil, errors.New(errors.ErrCodeToolUnavailable, "no renderer configured")
	}
	return nil, lastErr
}

// Version returns the first known version in the chain.
func (c Chain) Version(ctx context.Context) Version {
	for _, r := range c {
		if v := r.Version(ctx); !v.IsUnknown() {
			return v
		}
	}
	return Unknown
}

var _ Renderer = Chain(nil)
