package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/owlnet/pkg/errors"
	"github.com/matzehuels/owlnet/pkg/network"
	"github.com/matzehuels/owlnet/pkg/pipeline"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	termsOpts
	output string // output file path (stdout if empty)
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert <ontology.owl>",
		Short: "Convert an OWL/XML ontology into a Bayesian network",
		Long: `Convert an OWL/XML ontology into a Bayesian network in the editor's JSON format.

Pass "-" to read the ontology from stdin.

Examples:
  owlnet convert nausea.owl -o nausea.json
  owlnet convert nausea.owl --states Sim,Não --ignore Entidade
  cat nausea.owl | owlnet convert - > nausea.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd.Context(), args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func (c *CLI) runConvert(ctx context.Context, input string, opts *convertOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := c.convert(ctx, runner, input, &opts.termsOpts)
	if err != nil {
		return err
	}

	if opts.output == "" {
		return network.WriteJSON(res.Network, os.Stdout)
	}
	if err := network.ExportJSON(res.Network, opts.output); err != nil {
		return err
	}
	printSuccess("Converted %s", res.Network.Info.Name)
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheInfo.NetworkHit)
	printFile(opts.output)
	return nil
}

// convert runs a conversion behind a spinner and explains failures.
func (c *CLI) convert(ctx context.Context, runner *pipeline.Runner, input string, opts *termsOpts) (*pipeline.Result, error) {
	popts, err := opts.pipelineOptions(input)
	if err != nil {
		return nil, err
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Converting "+popts.Source+"...")
	spinner.Start()
	res, err := runner.Convert(ctx, popts)
	spinner.Stop()
	if err != nil {
		explain(err)
		return nil, err
	}
	prog.done("Converted " + popts.Source)
	return res, nil
}

// explain prints a hint for conversion failures a user can act on.
func explain(err error) {
	switch errors.GetCode(err) {
	case errors.ErrCodeMissingDefaultName:
		printDetail("The network is named after the default prefix; add <Prefix name=\"\" IRI=\"...\"/> to the ontology.")
	case errors.ErrCodeEmptyResult:
		printDetail("Every class was ignored or removed; check the terms file.")
	case errors.ErrCodeCircularStructure:
		printDetail("Run 'owlnet inspect nodes' to see the parent links that form the cycle.")
	case errors.ErrCodeTooManyParents:
		printDetail("Add the parent classes to the remove or ignore list of the terms file.")
	}
}
