package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/crxbuild/internal/adapters/linear"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "List the source modules that make up the popup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			modules, err := c.app.Resolve(cmd.Context(), c.options())
			if err != nil {
				return err
			}
			return linear.NewRenderer(cmd.OutOrStdout(), c.jsonOutput).Modules(modules)
		},
	}
}
