package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/crxbuild/internal/adapters/linear"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Bundle the popup into the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := c.app.Build(cmd.Context(), c.options())
			if err != nil {
				return err
			}
			return linear.NewRenderer(cmd.OutOrStdout(), c.jsonOutput).Built(result)
		},
	}
}
