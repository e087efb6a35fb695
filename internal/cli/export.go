package cli

import (
	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/apkgraph/pkg/errors"
	neo4jexport "github.com/matzehuels/apkgraph/pkg/export/neo4j"
)

func (c *CLI) exportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export dependency graphs to external stores",
	}
	cmd.AddCommand(c.exportNeo4jCommand())
	return cmd
}

type neo4jFlags struct {
	uri      string
	user     string
	password string
}

func (c *CLI) exportNeo4jCommand() *cobra.Command {
	opts := newQueryOpts()
	var db neo4jFlags

	cmd := &cobra.Command{
		Use:   "neo4j --package NAME --repo LOCATION",
		Short: "Write a dependency graph into Neo4j",
		Long: `Resolve the graph exactly as the root command does and MERGE it into a
Neo4j database as (:Package)-[:DEPENDS_ON]->(:Package). The password is
read from --password, the neo4j.password config key or APKGRAPH_NEO4J_PASSWORD.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.merge(c.cfg, cmd.Flags())
			db.merge(c, cmd)
			return c.runExportNeo4j(cmd, opts, db)
		},
	}

	opts.registerSource(cmd.Flags())
	cmd.Flags().StringVar(&db.uri, "uri", "", "bolt URI (default bolt://localhost:7687)")
	cmd.Flags().StringVar(&db.user, "user", "", "database user (default neo4j)")
	cmd.Flags().StringVar(&db.password, "password", "", "database password")
	return cmd
}

func (f *neo4jFlags) merge(c *CLI, cmd *cobra.Command) {
	if c.cfg == nil {
		return
	}
	fs := cmd.Flags()
	if !fs.Changed("uri") {
		f.uri = c.cfg.Neo4j.URI
	}
	if !fs.Changed("user") {
		f.user = c.cfg.Neo4j.Username
	}
	if !fs.Changed("password") {
		f.password = c.cfg.Neo4j.Password
	}
}

func (c *CLI) runExportNeo4j(cmd *cobra.Command, opts *queryOpts, db neo4jFlags) error {
	ctx := cmd.Context()
	if err := opts.validate(); err != nil {
		return err
	}
	src, err := c.loadSource(ctx, opts)
	if err != nil {
		return err
	}
	g, err := c.resolve(ctx, src, opts)
	if err != nil {
		return err
	}

	exp, err := neo4jexport.New(ctx, db.uri, db.user, db.password)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeNetwork, err, "connect to %s", db.uri)
	}
	defer exp.Close(ctx)

	prog := newProgress(loggerFromContext(ctx))
	res, err := exp.Export(ctx, g)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "export to neo4j")
	}
	prog.done("Exported graph")
	printSuccess(c.stderr, "Exported %d packages and %d dependencies (run %s)", res.Nodes, res.Edges, res.RunID)
	return nil
}
