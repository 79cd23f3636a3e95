package cache

// ScopedKeyer prefixes every key of another Keyer, so that several
// deployments can share one Redis instance without seeing each other's
// entries.
//
//	keyer := cache.NewScopedKeyer(nil, "covertower:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer returns a Keyer that prepends prefix to the keys of inner.
// A nil inner uses the [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// CoversKey returns the prefixed key of the inner keyer.
func (k *ScopedKeyer) CoversKey(presentationHash string, opts CoversKeyOpts) string {
	return k.prefix + k.inner.CoversKey(presentationHash, opts)
}

// ArtifactKey returns the prefixed key of the inner keyer.
func (k *ScopedKeyer) ArtifactKey(coverHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(coverHash, opts)
}
