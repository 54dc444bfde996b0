package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/owlnet/pkg/cache"
	"github.com/matzehuels/owlnet/pkg/convert"
	"github.com/matzehuels/owlnet/pkg/errors"
	"github.com/matzehuels/owlnet/pkg/network"
	"github.com/matzehuels/owlnet/pkg/observability"
	"github.com/matzehuels/owlnet/pkg/owl"
	"github.com/matzehuels/owlnet/pkg/render/dot"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner holds no per-call state; multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Convert turns an ontology into a network, reading and filling the cache.
func (r *Runner) Convert(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)
	key := r.Keyer.NetworkKey(cache.Hash(opts.Ontology), opts.NetworkKeyOpts())

	if !opts.Refresh {
		if res, ok := r.cached(ctx, key); ok {
			logger.Debug("network cache hit", "source", opts.Source, "nodes", res.Stats.NodeCount)
			return res, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "network")

	hooks := observability.Pipeline()
	hooks.OnConvertStart(ctx, opts.Source)
	start := time.Now()

	res, err := r.convert(opts, logger)
	hooks.OnConvertComplete(ctx, opts.Source, nodeCount(res), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if err := r.Cache.Set(ctx, key, res.JSON, cache.NetworkTTL); err != nil {
		logger.Warn("cache write failed", "key", key, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "network", len(res.JSON))
	}

	logger.Info("converted ontology",
		"source", opts.Source,
		"nodes", res.Stats.NodeCount,
		"edges", res.Stats.EdgeCount,
		"duration", res.Stats.DecodeTime+res.Stats.ConvertTime)
	return res, nil
}

func (r *Runner) cached(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	net, err := network.Unmarshal(data)
	if err != nil {
		r.Logger.Debug("discarding unreadable cache entry", "key", key, "error", err)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "network")
	return &Result{
		Network: net,
		JSON:    data,
		Hash:    cache.Hash(data),
		Stats: Stats{
			NodeCount: len(net.Nodes),
			EdgeCount: net.EdgeCount(),
		},
		CacheInfo: CacheInfo{NetworkHit: true},
	}, true
}

func (r *Runner) convert(opts Options, logger *log.Logger) (*Result, error) {
	decodeStart := time.Now()
	doc, err := owl.DecodeBytes(opts.Ontology)
	if err != nil {
		return nil, err
	}
	decodeTime := time.Since(decodeStart)

	convertStart := time.Now()
	net, err := convert.Convert(doc, convert.Options{Terms: opts.Terms, Logger: logger})
	if err != nil {
		return nil, err
	}
	convertTime := time.Since(convertStart)

	data, err := network.Marshal(net)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode network")
	}
	return &Result{
		Network: net,
		JSON:    data,
		Hash:    cache.Hash(data),
		Stats: Stats{
			NodeCount:   len(net.Nodes),
			EdgeCount:   net.EdgeCount(),
			DecodeTime:  decodeTime,
			ConvertTime: convertTime,
		},
	}, nil
}

// Render draws a converted network. The boolean reports a cache hit.
func (r *Runner) Render(ctx context.Context, res *Result, opts RenderOptions) ([]byte, bool, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	if res == nil || res.Network == nil {
		return nil, false, errors.New(errors.ErrCodeInvalidInput, "nothing to render")
	}

	key := r.Keyer.ArtifactKey(res.Hash, opts.ArtifactKeyOpts())
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Format)
	start := time.Now()

	data, err := r.render(ctx, res.Network, opts)
	hooks.OnRenderComplete(ctx, opts.Format, time.Since(start), err)
	if err != nil {
		return nil, false, fmt.Errorf("render %s: %w", opts.Format, err)
	}

	if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

func (r *Runner) render(ctx context.Context, net *network.Network, opts RenderOptions) ([]byte, error) {
	return dot.Render(ctx, dot.ToDOT(net, opts.dotOptions()), opts.Format)
}

// Inspect returns one intermediate view of the conversion. Views are not
// cached; they exist for debugging ontologies.
func (r *Runner) Inspect(ctx context.Context, opts Options, view convert.View) (any, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := owl.DecodeBytes(opts.Ontology)
	if err != nil {
		return nil, err
	}
	return convert.Inspect(doc, convert.Options{Terms: opts.Terms, Logger: r.logger(opts)}, view)
}

// Close releases the cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

func nodeCount(res *Result) int {
	if res == nil {
		return 0
	}
	return res.Stats.NodeCount
}
