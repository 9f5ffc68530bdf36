package cache

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey identifies a rendered artifact for the given inputs.
	ArtifactKey(inputsHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change the artifact bytes.
type ArtifactKeyOpts struct {
	Format        string `json:"format"`
	Engine        string `json:"engine,omitempty"`
	FontDir       string `json:"font_dir,omitempty"`
	SettingsHash  string `json:"settings"`
	RemovedMarker string `json:"removed_marker,omitempty"`
}

// DefaultKeyer hashes every key component.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256>" of the inputs hash and options.
func (DefaultKeyer) ArtifactKey(inputsHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputsHash, opts)
}

var _ Keyer = DefaultKeyer{}
