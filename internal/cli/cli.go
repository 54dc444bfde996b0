// Package cli implements the owlnet command-line interface.
//
// The commands convert OWL/XML ontologies into Bayesian networks, draw them,
// show the intermediate structures of a conversion, browse a network in the
// terminal, and serve the same operations over HTTP. The CLI is built with
// cobra and logs through charmbracelet/log; --verbose switches to debug
// output and turns on the observability log hooks.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/owlnet/pkg/buildinfo"
	"github.com/matzehuels/owlnet/pkg/cache"
	"github.com/matzehuels/owlnet/pkg/errors"
	"github.com/matzehuels/owlnet/pkg/observability"
	"github.com/matzehuels/owlnet/pkg/pipeline"
	"github.com/matzehuels/owlnet/pkg/terms"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "owlnet"

	// Environment variables read by the CLI.
	envCache    = "OWLNET_CACHE"
	envRedisURL = "OWLNET_REDIS_URL"
	envMongoURI = "OWLNET_MONGO_URI"
	envPrefix   = "OWLNET_CACHE_PREFIX"
	envAddr     = "OWLNET_ADDR"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level the pipeline, cache,
// and HTTP events are logged as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "owlnet converts OWL ontologies into Bayesian networks",
		Long:         `owlnet reads an OWL/XML ontology and turns its class hierarchy into a Bayesian network: binary nodes, parent links, and uniform conditional probability tables, ready for a network editor.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.convertCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. OWLNET_CACHE_PREFIX
// namespaces the keys when several deployments share one backend.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if prefix := os.Getenv(envPrefix); prefix != "" {
		keyer = cache.NewScopedKeyer(nil, prefix)
	}
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

// newCache picks the cache backend. OWLNET_CACHE wins, then OWLNET_REDIS_URL,
// then OWLNET_MONGO_URI; the default is a file cache under the user cache
// directory.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	for _, env := range []string{envCache, envRedisURL, envMongoURI} {
		if spec := os.Getenv(env); spec != "" {
			c.Logger.Debug("opening cache", "from", env)
			return cache.Open(ctx, spec)
		}
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/owlnet/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// termsOpts holds the flags shared by every command that runs a conversion.
type termsOpts struct {
	file    string   // TOML terms file; embedded defaults when empty
	ignore  []string // extra ignore entries
	remove  []string // extra remove entries
	states  []string // state names override
	noCache bool
	refresh bool
}

func (o *termsOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.file, "terms", "", "terms file (TOML with ignore, remove, states)")
	cmd.Flags().StringSliceVar(&o.ignore, "ignore", nil, "additional classes to splice out (comma-separated)")
	cmd.Flags().StringSliceVar(&o.remove, "remove", nil, "additional classes to delete with their subclasses (comma-separated)")
	cmd.Flags().StringSliceVar(&o.states, "states", nil, "the two state names, positive first (e.g. Sim,Não)")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "bypass cached results")
}

// load reads the terms file and applies the flag overrides.
func (o *termsOpts) load() (terms.Terms, error) {
	t := terms.Default()
	if o.file != "" {
		var err error
		if t, err = terms.Load(o.file); err != nil {
			return terms.Terms{}, err
		}
	}
	t.Ignore = append(t.Ignore, o.ignore...)
	t.Remove = append(t.Remove, o.remove...)
	if len(o.states) > 0 {
		t.States = o.states
	}
	return t, t.Validate()
}

// pipelineOptions reads the ontology at path ("-" for stdin) and builds the
// conversion options.
func (o *termsOpts) pipelineOptions(path string) (pipeline.Options, error) {
	t, err := o.load()
	if err != nil {
		return pipeline.Options{}, err
	}
	data, err := readInput(path)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Source:   filepath.Base(path),
		Ontology: data,
		Terms:    t,
		Refresh:  o.refresh,
	}, nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(io.LimitReader(os.Stdin, pipeline.MaxOntologySize+1))
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	return strings.Split(s, ",")
}

// basePath derives the output path stem from the output and input paths.
// A known format extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return "network"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil || ext == ".json" {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
