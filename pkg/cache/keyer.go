package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer derives cache keys.
type Keyer interface {
	// NetworkKey is the key of the network converted from an ontology.
	NetworkKey(ontologyHash string, opts NetworkKeyOpts) string

	// ArtifactKey is the key of a rendered network.
	ArtifactKey(networkHash string, opts ArtifactKeyOpts) string
}

// NetworkKeyOpts lists the conversion inputs besides the ontology itself.
type NetworkKeyOpts struct {
	Ignore []string `json:"ignore,omitempty"`
	Remove []string `json:"remove,omitempty"`
	States []string `json:"states,omitempty"`
}

// ArtifactKeyOpts lists the render inputs besides the network itself.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	RankDir string `json:"rankdir,omitempty"`
	CPT     bool   `json:"cpt,omitempty"`
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// NetworkKey returns "network:" followed by a hash of the inputs.
func (DefaultKeyer) NetworkKey(ontologyHash string, opts NetworkKeyOpts) string {
	return hashKey("network", ontologyHash, opts)
}

// ArtifactKey returns "artifact:" followed by a hash of the inputs.
func (DefaultKeyer) ArtifactKey(networkHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", networkHash, opts)
}

// ScopedKeyer prefixes every key of an inner keyer, so several deployments
// can share one Redis or MongoDB instance.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// NetworkKey returns the prefixed inner key.
func (k *ScopedKeyer) NetworkKey(ontologyHash string, opts NetworkKeyOpts) string {
	return k.prefix + k.inner.NetworkKey(ontologyHash, opts)
}

// ArtifactKey returns the prefixed inner key.
func (k *ScopedKeyer) ArtifactKey(networkHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(networkHash, opts)
}

// hashKey returns prefix:sha256(json(parts)).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
