package render

import "fmt"

// Renderable is anything that can produce a textual representation of itself.
type Renderable interface {
	Render() (string, error)
}

// Data holds a payload and the format it renders to. The zero value renders
// an empty string as text. Data is immutable once constructed.
type Data struct {
	payload string
	format  Format
}

// NewData creates a Data value. The format is not checked here; an
// out-of-range value surfaces as ErrInvalidFormat from Render.
func NewData(payload string, format Format) Data {
	return Data{payload: payload, format: format}
}

// Payload returns the raw payload.
func (d Data) Payload() string {
	return d.payload
}

// Format returns the format the data renders to.
func (d Data) Format() Format {
	return d.format
}

// Render returns the payload in the data's format. Nothing is escaped: HTML
// and JSON payloads containing markup or quotes produce malformed output.
func (d Data) Render() (string, error) {
	switch d.format {
	case FormatText:
		return d.payload, nil
	case FormatHTML:
		return "<html>" + d.payload + "</html>", nil
	case FormatJSON:
		return `{ "data": "` + d.payload + `"}`, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidFormat, d.format)
	}
}
