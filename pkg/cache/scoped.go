package cache

// ScopedKeyer wraps a Keyer with a prefix so that several projects can share
// one backend, typically a Redis instance, without seeing each other's
// entries.
//
// Example usage:
//
//	// Entries for one project
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "project:atlas:")
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

// ArrangeKey generates a prefixed key for arrangement caching.
func (k *ScopedKeyer) ArrangeKey(graphHash string, opts ArrangeKeyOpts) string {
	return k.prefix + k.inner.ArrangeKey(graphHash, opts)
}
