package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/owlnet/pkg/network"
	"github.com/matzehuels/owlnet/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	termsOpts
	output   string   // output file (single format) or base path (multiple)
	formats  []string // output formats: "svg", "png", "dot"
	rankDir  string   // Graphviz rank direction
	detailed bool     // show states and CPT size in node labels
}

// renderCommand creates the render command for drawing networks.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <ontology.owl|network.json>",
		Short: "Draw a network as SVG, PNG, or DOT",
		Long: `Draw a network with Graphviz. The input is either an ontology, which is
converted first, or a network JSON file written by 'owlnet convert'.

Examples:
  owlnet render nausea.owl                      # nausea.svg
  owlnet render nausea.json -f svg,png -o out/nausea
  owlnet render nausea.owl -f dot --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			for _, f := range opts.formats {
				if err := pipeline.ValidateFormat(f); err != nil {
					return err
				}
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot (comma-separated)")
	cmd.Flags().StringVar(&opts.rankDir, "rankdir", "", "Graphviz rank direction: TB (default), BT, LR, RL")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show states and CPT size in node labels")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := c.load(ctx, runner, input, &opts.termsOpts)
	if err != nil {
		return err
	}

	base := basePath(opts.output, input)
	var written []string
	for _, format := range opts.formats {
		prog := newProgress(c.Logger)
		data, hit, err := runner.Render(ctx, res, pipeline.RenderOptions{
			Format:   format,
			RankDir:  opts.rankDir,
			Detailed: opts.detailed,
		})
		if err != nil {
			return err
		}
		prog.done(fmt.Sprintf("Rendered %s (cached=%t)", format, hit))

		path := outputPath(opts.output, base, format, len(opts.formats))
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess("Rendered %s", res.Network.Info.Name)
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheInfo.NetworkHit)
	for _, path := range written {
		printFile(path)
	}
	return nil
}

// load converts an ontology or reads a network JSON file, by extension.
func (c *CLI) load(ctx context.Context, runner *pipeline.Runner, input string, opts *termsOpts) (*pipeline.Result, error) {
	if strings.EqualFold(filepath.Ext(input), ".json") {
		net, err := network.ImportJSON(input)
		if err != nil {
			return nil, err
		}
		c.Logger.Infof("Loaded %s: %d nodes, %d edges", input, len(net.Nodes), net.EdgeCount())
		return pipeline.FromNetwork(net)
	}
	return c.convert(ctx, runner, input, opts)
}

// outputPath returns the file for one format. A single format with an
// explicit output uses it as given.
func outputPath(output, base, format string, count int) string {
	if count == 1 && output != "" && filepath.Ext(output) != "" {
		return output
	}
	return base + "." + format
}
