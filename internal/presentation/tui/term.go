package tui

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Profile picks the color profile for w. Colors are disabled when noColor is
// set, when NO_COLOR is present, or when w is not a terminal.
func Profile(w io.Writer, noColor bool) termenv.Profile {
	if noColor || !IsTerminal(w) {
		return termenv.Ascii
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return termenv.Ascii
	}
	return termenv.NewOutput(w).Profile
}
