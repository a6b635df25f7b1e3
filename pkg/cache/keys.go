package cache

import "fmt"

// Keyer builds cache keys. Implementations must be deterministic: the same
// inputs always give the same key.
type Keyer interface {
	// HTTPKey identifies a fetched HTTP response.
	HTTPKey(namespace, key string) string

	// DataKey identifies a resolved dataset.
	DataKey(source, name string) string

	// SceneKey identifies a compiled scene by the hash of its spec.
	SceneKey(specHash string) string

	// ArtifactKey identifies a rendered artifact of a scene.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds the render options that change artifact bytes.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
	Title  string  `json:"title,omitempty"`
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return fmt.Sprintf("http:%s:%s", namespace, key)
}

// DataKey returns "data:<source>:<name>".
func (DefaultKeyer) DataKey(source, name string) string {
	return fmt.Sprintf("data:%s:%s", source, name)
}

// SceneKey returns "scene:<hash>".
func (DefaultKeyer) SceneKey(specHash string) string {
	return "scene:" + specHash
}

// ArtifactKey hashes the scene hash with the render options.
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}
