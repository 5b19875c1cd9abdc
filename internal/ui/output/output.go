// Package output creates termenv outputs with the CLI's colour rules.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Profile returns the colour profile for terminal output.
// NO_COLOR disables colours, CI gets plain ANSI, anything else is detected from the environment.
func Profile() termenv.Profile {
	switch {
	case os.Getenv("NO_COLOR") != "":
		return termenv.Ascii
	case os.Getenv("CI") != "":
		return termenv.ANSI
	default:
		return termenv.EnvColorProfile()
	}
}

// New creates a termenv.Output for w using Profile. A nil w selects os.Stderr.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(Profile()),
		termenv.WithTTY(true),
	)
	return termenv.NewOutput(w, opts...)
}
