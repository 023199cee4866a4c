// Package detector picks the color profile for terminal output.
package detector

import (
	"os"

	"github.com/muesli/termenv"
	"go.trai.ch/rewind/internal/ui/output"
	"golang.org/x/term"
)

// ColorMode is the user's color preference.
type ColorMode string

// Color modes accepted by the --color flag.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Environment describes where output is going.
type Environment struct {
	TTY bool
	CI  bool
}

// DetectEnvironment inspects stdout and the CI variable.
func DetectEnvironment() Environment {
	ci := os.Getenv("CI")
	return Environment{
		TTY: term.IsTerminal(int(os.Stdout.Fd())), //nolint:gosec // Fd fits in int on supported platforms
		CI:  ci == "true" || ci == "1",
	}
}

// ResolveProfile returns the color profile for mode in env. Auto mode uses the
// terminal's own profile on a TTY, plain ANSI in CI, and no color otherwise.
func ResolveProfile(env Environment, mode ColorMode) termenv.Profile {
	switch mode {
	case ColorNever:
		return termenv.Ascii
	case ColorAlways:
		return termenv.ANSI256
	}

	switch {
	case env.CI:
		return output.ColorProfileANSI()
	case env.TTY:
		return output.ColorProfile()
	default:
		return termenv.Ascii
	}
}
