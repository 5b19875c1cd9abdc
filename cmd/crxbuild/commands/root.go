// Package commands implements the CLI commands for crxbuild.
package commands

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.trai.ch/crxbuild/internal/app"
	"go.trai.ch/crxbuild/internal/build"
	"go.trai.ch/crxbuild/internal/core/domain"
	"go.trai.ch/crxbuild/internal/core/ports"
)

// CLI represents the command line interface for crxbuild.
type CLI struct {
	app     Application
	rootCmd *cobra.Command

	configPath string
	outDir     string
	jsonOutput bool
	trace      bool

	setJSON      func(bool)
	setTrace     func(bool)
	setLogOutput func(io.Writer)

	programOptions []tea.ProgramOption
}

// Application represents the application logic interface.
type Application interface {
	Resolve(ctx context.Context, opts app.Options) ([]string, error)
	Build(ctx context.Context, opts app.Options) (*domain.ResolvedModule, error)
	Watch(ctx context.Context, opts app.Options, observer ports.BuildObserver) error
	Clean(ctx context.Context, opts app.Options) error
}

// Option configures a CLI.
type Option func(*CLI)

// WithJSONSwitch registers the function the --json flag is reported to.
func WithJSONSwitch(fn func(bool)) Option {
	return func(c *CLI) {
		c.setJSON = fn
	}
}

// WithTraceSwitch registers the function the --trace flag is reported to.
func WithTraceSwitch(fn func(bool)) Option {
	return func(c *CLI) {
		c.setTrace = fn
	}
}

// WithLogOutput registers the function that redirects log output while the
// interactive watch view owns the terminal.
func WithLogOutput(fn func(io.Writer)) Option {
	return func(c *CLI) {
		c.setLogOutput = fn
	}
}

// WithProgramOptions adds options to the interactive watch view's program.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(c *CLI) {
		c.programOptions = append(c.programOptions, opts...)
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "crxbuild",
		Short:         "Bundle the popup of a browser extension",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "Path to "+domain.ConfigFileName+" or a directory to search from")
	flags.StringVarP(&c.outDir, "out-dir", "o", "", "Override the configured output directory")
	flags.BoolVar(&c.jsonOutput, "json", false, "Emit logs and results as JSON")
	flags.BoolVar(&c.trace, "trace", false, "Log a line for every finished build span")

	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if c.setJSON != nil {
			c.setJSON(c.jsonOutput)
		}
		if c.setTrace != nil {
			c.setTrace(c.trace)
		}
	}

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) options() app.Options {
	return app.Options{
		ConfigPath: c.configPath,
		OutDir:     c.outDir,
	}
}
