package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Render renders a report in the specified format and writes it to w.
// report must be a *FormatList or *SaveResult for table output; the
// structured formats accept any value.
func Render(w io.Writer, report any, format Format) error {
	switch format {
	case FormatTable:
		return RenderTable(w, report)
	case FormatJSON:
		return RenderJSON(w, report)
	case FormatYAML:
		return RenderYAML(w, report)
	case FormatTOML:
		return RenderTOML(w, report)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// RenderJSON renders a report as indented JSON
func RenderJSON(w io.Writer, report any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// RenderYAML renders a report as YAML
func RenderYAML(w io.Writer, report any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return err
	}
	return encoder.Close()
}

// RenderTOML renders a report as TOML
func RenderTOML(w io.Writer, report any) error {
	encoder := toml.NewEncoder(w)
	encoder.SetIndentTables(true)
	return encoder.Encode(report)
}
