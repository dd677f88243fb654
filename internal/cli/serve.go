package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lineage/pkg/server"
	"github.com/matzehuels/lineage/pkg/source"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [roster]",
		Short: "Serve members and tree layouts over HTTP",
		Long: `Serve members and tree layouts over HTTP.

The API reads members from the roster given as argument or from the source
configured in lineage.toml. Member lists and layouts are cached with the
configured cache backend; use the redis backend to share the cache between
several servers.

Routes:
  GET  /healthz
  GET  /v1/members
  GET  /v1/members/{id}
  POST /v1/layout
  GET  /v1/tree
  GET  /v1/tree.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Server.Addr
			}
			return c.runServe(cmd.Context(), args, addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, args []string, addr string, noCache bool) error {
	src, err := c.openSource(ctx, args)
	if err != nil {
		return err
	}
	defer src.Close()

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	cached := source.NewCached(src, runner.Cache, nil, 0, c.Logger)
	srv := server.New(runner, cached, c.cfg.PipelineOptions(), c.Logger)

	printInfo("Serving %s members on %s", src.Name(), StyleHighlight.Render(addr))
	return srv.ListenAndServe(ctx, addr)
}
