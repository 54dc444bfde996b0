// Package pipeline runs decode → convert → render with caching.
//
// The CLI and the HTTP API both go through a [Runner], so they share cache
// keys, defaults, and validation:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Convert(ctx, pipeline.Options{
//	    Source:   "nausea.owl",
//	    Ontology: data,
//	    Terms:    terms.Default(),
//	})
//	svg, _, err := runner.Render(ctx, res, pipeline.RenderOptions{Format: "svg"})
//
// Conversion results are cached as network JSON under a key derived from the
// ontology bytes and the terms; rendered artifacts are cached under a key
// derived from the network JSON and the render options.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/owlnet/pkg/cache"
	"github.com/matzehuels/owlnet/pkg/errors"
	"github.com/matzehuels/owlnet/pkg/network"
	"github.com/matzehuels/owlnet/pkg/render/dot"
	"github.com/matzehuels/owlnet/pkg/terms"
)

// DefaultFormat is the render format used when none is given.
const DefaultFormat = dot.FormatSVG

// MaxOntologySize bounds the ontology documents the pipeline accepts.
const MaxOntologySize = 32 << 20

// =============================================================================
// Options
// =============================================================================

// Options configures a conversion.
type Options struct {
	// Source names the ontology in logs and hooks, usually its file name.
	Source string `json:"source,omitempty"`

	// Ontology is the raw OWL/XML document.
	Ontology []byte `json:"-"`

	// Terms steers ignoring, removal, and state names.
	Terms terms.Terms `json:"terms"`

	// Refresh skips the cache lookup; the fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Logger overrides the runner's logger for this call.
	Logger *log.Logger `json:"-"`
}

// Validate checks the options before any work is done.
func (o *Options) Validate() error {
	if len(o.Ontology) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "ontology is empty")
	}
	if len(o.Ontology) > MaxOntologySize {
		return errors.New(errors.ErrCodeInvalidInput, "ontology is larger than %d bytes", MaxOntologySize)
	}
	if o.Source == "" {
		o.Source = "ontology"
	}
	return o.Terms.Validate()
}

// NetworkKeyOpts returns the cache key inputs besides the ontology.
func (o *Options) NetworkKeyOpts() cache.NetworkKeyOpts {
	return cache.NetworkKeyOpts{
		Ignore: o.Terms.Ignore,
		Remove: o.Terms.Remove,
		States: o.Terms.States,
	}
}

// RenderOptions configures rendering.
type RenderOptions struct {
	Format   string `json:"format"`
	RankDir  string `json:"rankdir,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`
}

// SetDefaults fills in the default format.
func (o *RenderOptions) SetDefaults() {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
}

// Validate checks format and rank direction.
func (o *RenderOptions) Validate() error {
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	return o.dotOptions().Validate()
}

// ArtifactKeyOpts returns the cache key inputs besides the network.
func (o *RenderOptions) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: o.Format, RankDir: o.RankDir, CPT: o.Detailed}
}

func (o *RenderOptions) dotOptions() dot.Options {
	return dot.Options{RankDir: o.RankDir, Detailed: o.Detailed}
}

// ValidateFormat checks that format is one of [dot.Formats].
func ValidateFormat(format string) error {
	if !dot.ValidFormat(format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q", format)
	}
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result is the outcome of [Runner.Convert].
type Result struct {
	Network *network.Network

	// JSON is the encoded network, as cached and as handed to the editor.
	JSON []byte

	// Hash identifies the network content; artifact keys derive from it.
	Hash string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats reports sizes and timings of a conversion.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	DecodeTime  time.Duration
	ConvertTime time.Duration
}

// CacheInfo tells which stages were served from the cache.
type CacheInfo struct {
	NetworkHit bool
}

// FromNetwork wraps an already converted network, for example one read from
// disk, so it can be passed to [Runner.Render].
func FromNetwork(net *network.Network) (*Result, error) {
	data, err := network.Marshal(net)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode network")
	}
	return &Result{
		Network: net,
		JSON:    data,
		Hash:    cache.Hash(data),
		Stats: Stats{
			NodeCount: len(net.Nodes),
			EdgeCount: net.EdgeCount(),
		},
	}, nil
}
