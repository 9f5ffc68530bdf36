package cache

// ScopedKeyer prefixes every key from an inner Keyer. The server uses it
// to keep its entries apart from other users of a shared Redis.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "timetable:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
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

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(inputsHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(inputsHash, opts)
}
