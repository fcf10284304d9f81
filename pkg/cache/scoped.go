package cache

// ScopedKeyer wraps a Keyer with a prefix, giving each tenant of a shared
// backend its own key space.
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "chart:3f2a:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer returns a keyer that prepends prefix to every key of
// inner. A nil inner uses the DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) DataKey(source, contentHash string) string {
	return k.prefix + k.inner.DataKey(source, contentHash)
}

func (k *ScopedKeyer) ArtifactKey(chartHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(chartHash, opts)
}
