// Package detector chooses how the watch command presents its progress.
package detector

import (
	"io"
	"os"

	"go.trai.ch/crxbuild/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// OutputMode represents the rendering mode of a watch session.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeTUI selects the interactive status view.
	ModeTUI
	// ModeLinear selects one printed line per build.
	ModeLinear
)

func (m OutputMode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	case ModeLinear:
		return "linear"
	default:
		return "auto"
	}
}

// fder is implemented by writers backed by a file descriptor.
type fder interface {
	Fd() uintptr
}

// DetectEnvironment returns the recommended mode for writing to out.
// Anything that is not a terminal, or any CI environment, gets linear output.
func DetectEnvironment(out io.Writer) OutputMode {
	f, ok := out.(fder)
	isTTY := ok && term.IsTerminal(int(f.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModeLinear
	}
	return ModeTUI
}

// ParseMode parses the value of the --output flag.
// Accepted values are "auto", "tui", "linear" and its alias "ci". Empty means auto.
func ParseMode(flag string) (OutputMode, error) {
	switch flag {
	case "auto", "":
		return ModeAuto, nil
	case "tui":
		return ModeTUI, nil
	case "linear", "ci":
		return ModeLinear, nil
	default:
		return ModeAuto, zerr.With(zerr.Wrap(domain.ErrUnknownOutputMode, "invalid --output"), "mode", flag)
	}
}

// ResolveMode applies the user's choice to the auto-detected mode.
// Plain JSON output always selects linear mode.
func ResolveMode(autoDetected, user OutputMode, jsonOutput bool) OutputMode {
	switch {
	case jsonOutput:
		return ModeLinear
	case user != ModeAuto:
		return user
	case autoDetected == ModeAuto:
		return ModeLinear
	default:
		return autoDetected
	}
}
