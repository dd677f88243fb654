package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The API server uses it so that its entries never collide with the CLI's
// when both share one Redis instance.
//
// Example usage:
//
//	serverKeyer := NewScopedKeyer(NewDefaultKeyer(), "server:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RosterKey generates a prefixed key for roster caching.
func (k *ScopedKeyer) RosterKey(source, location string) string {
	return k.prefix + k.inner.RosterKey(source, location)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(rosterHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(rosterHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
