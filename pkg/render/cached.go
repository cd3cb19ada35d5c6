package render

import (
	"context"
	"time"

	"github.com/matzehuels/docgraph/pkg/cache"
	"github.com/matzehuels/docgraph/pkg/logging"
	"github.com/matzehuels/docgraph/pkg/observability"
)

// Cached stores the output of another renderer. Cache failures are logged
// and never fail a render.
type Cached struct {
	inner Renderer
	cache cache.Cache
	keyer cache.Keyer
	ttl   time.Duration
}

// NewCached wraps r. A nil keyer uses [cache.NewDefaultKeyer].
func NewCached(r Renderer, c cache.Cache, keyer cache.Keyer, ttl time.Duration) *Cached {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Cached{inner: r, cache: c, keyer: keyer, ttl: ttl}
}

// Name returns the wrapped renderer's name.
func (c *Cached) Name() string {
	return c.inner.Name()
}

// Version returns the wrapped renderer's version.
func (c *Cached) Version(ctx context.Context) Version {
	return c.inner.Version(ctx)
}

// Render returns cached output for (src, format) or renders and stores it.
func (c *Cached) Render(ctx context.Context, src []byte, format string) ([]byte, error) {
	logger := logging.FromContext(ctx)
	key := c.keyer.RenderKey(cache.Hash(src), cache.RenderKeyOpts{
		Renderer: c.inner.Name(),
		Version:  c.inner.Version(ctx).String(),
		Format:   format,
	})

	data, hit, err := c.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("render cache read failed", "err", err)
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, format)
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, format)

	out, err := c.inner.Render(ctx, src, format)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, out, c.ttl); err != nil {
		logger.Warn("render cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, format, len(out))
	}
	return out, nil
}

var _ Renderer = (*Cached)(nil)
