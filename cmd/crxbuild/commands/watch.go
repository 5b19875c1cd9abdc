package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.trai.ch/crxbuild/internal/adapters/detector"
	"go.trai.ch/crxbuild/internal/adapters/linear"
	"go.trai.ch/crxbuild/internal/adapters/tui"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the popup whenever one of its sources changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flag, _ := cmd.Flags().GetString("output")
			mode, err := detector.ParseMode(flag)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			mode = detector.ResolveMode(detector.DetectEnvironment(out), mode, c.jsonOutput)
			if mode == detector.ModeTUI {
				return c.watchInteractive(cmd)
			}
			return c.app.Watch(cmd.Context(), c.options(), linear.NewRenderer(out, c.jsonOutput))
		},
	}

	cmd.Flags().String("output", "auto", "Output mode: auto, tui or linear")

	return cmd
}

// watchInteractive runs the watch session behind the status view. Quitting the
// view ends the session.
func (c *CLI) watchInteractive(cmd *cobra.Command) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	out := cmd.OutOrStdout()
	opts := append([]tea.ProgramOption{tea.WithOutput(out)}, c.programOptions...)
	r := tui.NewRenderer(tui.NewModel("", out), opts...)
	if err := r.Start(ctx); err != nil {
		return err
	}

	if c.setLogOutput != nil {
		c.setLogOutput(r.LogWriter())
		defer c.setLogOutput(cmd.ErrOrStderr())
	}

	go func() {
		select {
		case <-r.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	err := c.app.Watch(ctx, c.options(), r)
	_ = r.Stop()
	if waitErr := r.Wait(); err == nil {
		err = waitErr
	}
	return err
}
