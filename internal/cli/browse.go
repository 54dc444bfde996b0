package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// browseCommand creates the browse command, an interactive node browser.
func (c *CLI) browseCommand() *cobra.Command {
	var opts termsOpts

	cmd := &cobra.Command{
		Use:   "browse <ontology.owl|network.json>",
		Short: "Browse the nodes and tables of a network interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), args[0], &opts)
		},
	}

	opts.register(cmd)
	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, input string, opts *termsOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := c.load(ctx, runner, input, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(NewNetworkModel(res.Network), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
