package cache

// Keyer builds cache keys. Implementations must return different keys for
// inputs that produce different outputs.
type Keyer interface {
	// CoversKey identifies the covers of a presentation at one degree.
	CoversKey(presentationHash string, opts CoversKeyOpts) string

	// ArtifactKey identifies a rendering of one cover.
	ArtifactKey(coverHash string, opts ArtifactKeyOpts) string
}

// CoversKeyOpts holds the enumeration settings that change its result.
type CoversKeyOpts struct {
	Degree int    `json:"degree"`
	Limit  int    `json:"limit,omitempty"`
	Format string `json:"format,omitempty"` // serialization version of the stored result
}

// ArtifactKeyOpts holds the rendering settings that change an artifact.
type ArtifactKeyOpts struct {
	Format    string `json:"format"`
	Tree      bool   `json:"tree,omitempty"`
	Labels    bool   `json:"labels,omitempty"`
	HideFixed bool   `json:"hide_fixed,omitempty"`
}

// DefaultKeyer hashes its inputs into "<kind>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// CoversKey returns "covers:<hash>".
func (DefaultKeyer) CoversKey(presentationHash string, opts CoversKeyOpts) string {
	return hashKey("covers", presentationHash, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(coverHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", coverHash, opts)
}

var _ Keyer = DefaultKeyer{}
