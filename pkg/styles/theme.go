package styles

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Color palette; adaptive colors work on light and dark backgrounds.
var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7C7AE6"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#00AF87", Dark: "#00D787"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}
	ColorBorder  = lipgloss.AdaptiveColor{Light: "#B2B2B2", Dark: "#585858"}
	ColorSubtle  = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#8A8A8A"}
)

// asciiBorder is used when the terminal cannot draw box characters.
var asciiBorder = lipgloss.Border{
	Top:         "-",
	Bottom:      "-",
	Left:        "|",
	Right:       "|",
	TopLeft:     "+",
	TopRight:    "+",
	BottomLeft:  "+",
	BottomRight: "+",
}

// Theme holds the styles bound to one output renderer.
type Theme struct {
	Heading lipgloss.Style
	Box     lipgloss.Style
	Subtle  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Icons   Icons
}

// NewTheme builds a theme that renders to w with the given capabilities.
func NewTheme(w io.Writer, c Capability) Theme {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(c.Profile())

	border := lipgloss.RoundedBorder()
	if !c.HasUnicode {
		border = asciiBorder
	}

	return Theme{
		Heading: r.NewStyle().Bold(true).Foreground(ColorPrimary),
		Box:     r.NewStyle().Border(border).BorderForeground(ColorBorder).Padding(0, 1),
		Subtle:  r.NewStyle().Foreground(ColorSubtle),
		Success: r.NewStyle().Foreground(ColorSuccess),
		Error:   r.NewStyle().Foreground(ColorError).Bold(true),
		Icons:   GetIcons(c),
	}
}

// Preview frames a rendering with a title and a byte count footer.
func (t Theme) Preview(title, body string) string {
	box := t.Box.Render(body)
	footer := t.Subtle.Render(fmt.Sprintf("%d bytes", len(body)))

	heading := t.Heading.Render(title)
	if pad := Width(box) - Width(heading) - Width(footer); pad > 0 {
		heading += strings.Repeat(" ", pad) + footer
	} else {
		heading += " " + footer
	}

	return lipgloss.JoinVertical(lipgloss.Left, heading, box)
}

// Width returns the display width of the widest line in s, ignoring
// escape sequences.
func Width(s string) int {
	widest := 0
	for _, line := range strings.Split(s, "\n") {
		if w := ansi.StringWidth(line); w > widest {
			widest = w
		}
	}
	return widest
}
