// Package render provides the renderable data holder and its output formats.
package render

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFormat is returned when a format tag is outside the known set.
var ErrInvalidFormat = errors.New("invalid format")

// Format selects the textual representation a Data value renders to.
type Format int

const (
	// FormatText renders the payload unchanged
	FormatText Format = iota
	// FormatHTML wraps the payload in an html tag pair
	FormatHTML
	// FormatJSON renders a single-key JSON object literal
	FormatJSON
)

var formatNames = map[Format]string{
	FormatText: "text",
	FormatHTML: "html",
	FormatJSON: "json",
}

var formatExtensions = map[Format]string{
	FormatText: "txt",
	FormatHTML: "html",
	FormatJSON: "json",
}

// AllFormats returns every known format in declaration order.
func AllFormats() []Format {
	return []Format{FormatText, FormatHTML, FormatJSON}
}

// ParseFormat parses a format name, accepting common aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt":
		return FormatText, nil
	case "html", "htm":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("%w: %q (valid formats: text, html, json)", ErrInvalidFormat, s)
	}
}

// Valid reports whether f is one of the declared formats.
func (f Format) Valid() bool {
	_, ok := formatNames[f]
	return ok
}

// String returns the string representation of the format
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Extension returns the conventional file extension, without the dot.
// Unknown formats have no extension.
func (f Format) Extension() string {
	return formatExtensions[f]
}
