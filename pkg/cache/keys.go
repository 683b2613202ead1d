package cache

// ArtifactKeyOpts identifies the rendering of a script.
type ArtifactKeyOpts struct {
	Terminal string `json:"terminal"`
	Engine   string `json:"engine,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// ScriptKey keys a compiled script by the hash of its source description.
	ScriptKey(descriptionHash string) string

	// ArtifactKey keys rendered output by the hash of the compiled script.
	ArtifactKey(scriptHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ScriptKey implements Keyer.
func (DefaultKeyer) ScriptKey(descriptionHash string) string {
	return "script:" + descriptionHash
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(scriptHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", scriptHash, opts)
}

// ScopedKeyer prefixes every key of an inner Keyer, so several deployments
// can share one Redis instance.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with prefix. A nil inner uses DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ScriptKey implements Keyer.
func (k *ScopedKeyer) ScriptKey(descriptionHash string) string {
	return k.prefix + k.inner.ScriptKey(descriptionHash)
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(scriptHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(scriptHash, opts)
}
