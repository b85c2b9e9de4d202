// Package styles provides terminal detection and the lipgloss theme used
// for human-facing datasaver output.
package styles

import (
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Capability represents terminal capabilities
type Capability struct {
	// IsTerminal is true when the output is an interactive terminal
	IsTerminal bool

	// Has256Colors indicates 256-color or truecolor support
	Has256Colors bool

	// Has16Colors indicates basic 16-color support
	Has16Colors bool

	// HasNoColors indicates no color support (TERM=dumb, NO_COLOR, pipes)
	HasNoColors bool

	// HasUnicode indicates Unicode symbol support
	HasUnicode bool

	// Term is the TERM environment variable
	Term string
}

// DetectCapabilities detects capabilities of w from the environment.
func DetectCapabilities(w io.Writer) Capability {
	return detect(w, os.Getenv)
}

func detect(w io.Writer, getenv func(string) string) Capability {
	termName := getenv("TERM")
	colorTerm := getenv("COLORTERM")

	c := Capability{
		Term:       termName,
		IsTerminal: IsTerminal(w),
		HasUnicode: true,
	}

	switch {
	case termName == "dumb" || termName == "":
		c.HasNoColors = true
		c.HasUnicode = false
	case colorTerm == "truecolor" || colorTerm == "24bit":
		c.Has256Colors = true
	case strings.Contains(termName, "256color"):
		c.Has256Colors = true
	default:
		c.Has16Colors = true
	}

	// https://no-color.org/
	if getenv("NO_COLOR") != "" || !c.IsTerminal {
		c.HasNoColors = true
		c.Has256Colors = false
		c.Has16Colors = false
	}

	return c
}

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// Profile maps the capability to a termenv color profile.
func (c Capability) Profile() termenv.Profile {
	switch {
	case c.HasNoColors:
		return termenv.Ascii
	case c.Has256Colors:
		return termenv.ANSI256
	default:
		return termenv.ANSI
	}
}

// Icons provides terminal-appropriate status icons
type Icons struct {
	Checkmark string
	Cross     string
	Arrow     string
}

// GetIcons returns appropriate icons for the terminal
func GetIcons(c Capability) Icons {
	if !c.HasUnicode {
		return Icons{Checkmark: "[OK]", Cross: "[X]", Arrow: "->"}
	}
	return Icons{Checkmark: "✓", Cross: "✗", Arrow: "→"}
}
