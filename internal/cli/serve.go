package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/apkgraph/internal/server"
	apperrors "github.com/matzehuels/apkgraph/pkg/errors"
)

func (c *CLI) serveCommand() *cobra.Command {
	opts := newQueryOpts()
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve dependency queries over HTTP",
		Long: `Serve loads the repository index once and answers queries over HTTP:

  GET /healthz
  GET /packages/{name}/deps?version=V&format=json|tree|d2|dot
  GET /packages/{name}/rdeps?format=json|tree|d2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.merge(c.cfg, cmd.Flags())
			if f := cmd.Flags().Lookup("addr"); f != nil && !f.Changed && c.cfg != nil {
				addr = c.cfg.Server.Addr
			}
			return c.runServe(cmd, opts, addr)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.repo, "repo", "", "repository URL, index file or directory")
	fs.BoolVar(&opts.testMode, "test-mode", false, "read --repo as a local test repository file")
	fs.StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts *queryOpts, addr string) error {
	ctx := cmd.Context()
	repo, err := apperrors.ValidateRepository(opts.repo)
	if err != nil {
		return err
	}
	opts.repo = repo

	src, err := c.loadSource(ctx, opts)
	if err != nil {
		return err
	}

	logger := loggerFromContext(ctx)
	printInfo(c.stderr, "Serving %d packages from %s", src.Len(), opts.repo)
	if err := server.New(src, logger).ListenAndServe(ctx, addr); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "server")
	}
	return ctx.Err()
}
