package cache

// ScopedKeyer wraps a Keyer with a prefix so that several tools or users
// can share one backend, typically Redis, without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "viewstack:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key of
// inner. A nil inner uses DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// QueryKey generates a prefixed query key.
func (k *ScopedKeyer) QueryKey(docHash string, exprs []string) string {
	return k.prefix + k.inner.QueryKey(docHash, exprs)
}

// RenderKey generates a prefixed render key.
func (k *ScopedKeyer) RenderKey(docHash string, exprs []string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(docHash, exprs, opts)
}
