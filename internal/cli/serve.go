package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vischart/internal/server"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var listen string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chart rendering HTTP API",
		Long: `Serve the compile and render endpoints over HTTP:

  GET  /healthz
  POST /v1/compile            chart spec in, scene graph JSON out
  POST /v1/render?format=svg  chart spec in, rendered chart out

Named data is resolved from the configured data directory, URL and MongoDB.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen == "" {
				listen = c.Config.Listen
			}
			return c.runServe(cmd.Context(), listen, noCache)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (default localhost:8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	runner, closeRunner, err := c.newRunner(ctx, "", noCache)
	if err != nil {
		return err
	}
	defer closeRunner()

	printInfo("Listening on http://%s", addr)
	return server.New(runner, c.Logger).ListenAndServe(ctx, addr)
}
