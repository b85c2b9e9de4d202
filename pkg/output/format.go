// Package output renders command reports (format listings, save results)
// for humans and scripts.
package output

import "fmt"

// Format represents the report output format
type Format string

const (
	// FormatTable is a plain text table format
	FormatTable Format = "table"
	// FormatJSON is JSON format
	FormatJSON Format = "json"
	// FormatYAML is YAML format
	FormatYAML Format = "yaml"
	// FormatTOML is TOML format
	FormatTOML Format = "toml"
)

// ValidFormats lists the accepted report formats.
var ValidFormats = []Format{FormatTable, FormatJSON, FormatYAML, FormatTOML}

// ParseFormat parses a string into a Format
func ParseFormat(s string) (Format, error) {
	switch s {
	case "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unknown output format: %s (valid formats: table, json, yaml, toml)", s)
	}
}

// String returns the string representation of the format
func (f Format) String() string {
	return string(f)
}
