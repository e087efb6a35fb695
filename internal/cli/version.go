package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/apkgraph/pkg/buildinfo"
)

// versionCommand prints build information. The --version flag selects a
// package version, so build info lives in a subcommand.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), appName+" "+buildinfo.String())
			return err
		},
	}
}
