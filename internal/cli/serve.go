package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/owlnet/internal/api"
)

const defaultAddr = ":8080"

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		opts termsOpts
		addr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve conversions over HTTP",
		Long: `Serve conversions over HTTP until interrupted.

Endpoints:
  POST /api/convert          body: OWL/XML; ?format=json|dot|svg|png
  POST /api/inspect/{view}   body: OWL/XML
  GET  /api/views
  GET  /health

The address defaults to $OWLNET_ADDR, then :8080.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := opts.load()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = os.Getenv(envAddr)
			}
			if addr == "" {
				addr = defaultAddr
			}

			runner, err := c.newRunner(cmd.Context(), opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := api.NewServer(runner, c.Logger, api.Config{Terms: t})
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $OWLNET_ADDR or :8080)")
	cmd.Flags().StringVar(&opts.file, "terms", "", "terms file (TOML with ignore, remove, states)")
	cmd.Flags().StringSliceVar(&opts.ignore, "ignore", nil, "additional classes to splice out (comma-separated)")
	cmd.Flags().StringSliceVar(&opts.remove, "remove", nil, "additional classes to delete with their subclasses (comma-separated)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}
