package cache

// ScopedKeyer prefixes every key of an inner Keyer, giving each project its
// own namespace in a shared backend:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "epydoc:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// RenderKey returns the prefixed render key.
func (k *ScopedKeyer) RenderKey(sourceHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(sourceHash, opts)
}
