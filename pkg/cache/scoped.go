package cache

// ScopedKeyer wraps a Keyer with a prefix so that several record stores can
// share one cache without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "menus:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys. A nil inner keyer means
// the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PageKey generates a prefixed page key.
func (k *ScopedKeyer) PageKey(recordsHash string, opts PageKeyOpts) string {
	return k.prefix + k.inner.PageKey(recordsHash, opts)
}
