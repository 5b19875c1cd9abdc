package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/crxbuild/internal/adapters/linear"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Clean(cmd.Context(), c.options()); err != nil {
				return err
			}
			return linear.NewRenderer(cmd.OutOrStdout(), c.jsonOutput).Cleaned()
		},
	}
}
