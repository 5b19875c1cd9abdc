// Package main is the entry point for the crxbuild popup bundler.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/crxbuild/cmd/crxbuild/commands"
	"go.trai.ch/crxbuild/internal/app"
	_ "go.trai.ch/crxbuild/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

// jsonSwitcher is implemented by loggers that can emit JSON records.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

// outputSwitcher is implemented by loggers whose destination can change.
type outputSwitcher interface {
	SetOutput(w io.Writer)
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { _ = c.Telemetry.Shutdown(context.Background()) }, nil
	}))
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// The logger is not available yet.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()

	for _, opt := range opts {
		opt(components.App)
	}

	var cliOpts []commands.Option
	if s, ok := components.Logger.(jsonSwitcher); ok {
		cliOpts = append(cliOpts, commands.WithJSONSwitch(s.SetJSON))
	}
	if s, ok := components.Logger.(outputSwitcher); ok {
		cliOpts = append(cliOpts, commands.WithLogOutput(s.SetOutput))
	}
	if components.Telemetry != nil {
		cliOpts = append(cliOpts, commands.WithTraceSwitch(components.Telemetry.SetVerbose))
	}

	cli := commands.New(components.App, cliOpts...)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return 1
	}
	return 0
}
