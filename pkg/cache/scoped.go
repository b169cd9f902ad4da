package cache

// ScopedKeyer wraps a Keyer with a prefix so separate consumers sharing one
// backend get isolated namespaces. The API server scopes its keys this way to
// keep them apart from CLI entries when both point at the same Redis.
//
// Example usage:
//
//	apiKeyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every generated key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RouteKey generates a prefixed route key.
func (k *ScopedKeyer) RouteKey(gridHash string, opts RouteKeyOpts) string {
	return k.prefix + k.inner.RouteKey(gridHash, opts)
}
