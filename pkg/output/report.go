package output

import (
	"time"

	"github.com/andri/datasaver/pkg/render"
	"github.com/andri/datasaver/pkg/saver"
)

// ExamplePayload is rendered for each format in a FormatList.
const ExamplePayload = "hello"

// FormatInfo describes one data format and its paired saver.
type FormatInfo struct {
	Name      string `json:"name" yaml:"name" toml:"name"`
	Extension string `json:"extension" yaml:"extension" toml:"extension"`
	Saver     string `json:"saver" yaml:"saver" toml:"saver"`
	Example   string `json:"example" yaml:"example" toml:"example"`
}

// FormatList is the report behind `datasaver formats`.
type FormatList struct {
	Formats []FormatInfo `json:"formats" yaml:"formats" toml:"formats"`
}

// SaveResult is the report printed after a save.
type SaveResult struct {
	Path       string    `json:"path" yaml:"path" toml:"path"`
	Format     string    `json:"format" yaml:"format" toml:"format"`
	Saver      string    `json:"saver" yaml:"saver" toml:"saver"`
	Bytes      int64     `json:"bytes" yaml:"bytes" toml:"bytes"`
	Appended   bool      `json:"appended" yaml:"appended" toml:"appended"`
	BackupPath string    `json:"backupPath,omitempty" yaml:"backupPath,omitempty" toml:"backupPath,omitempty"`
	SavedAt    time.Time `json:"savedAt" yaml:"savedAt" toml:"savedAt"`
}

// BuildFormatList describes every known format using the registered savers.
func BuildFormatList() (*FormatList, error) {
	list := &FormatList{}
	for _, f := range render.AllFormats() {
		s, err := saver.ForFormat(f)
		if err != nil {
			return nil, err
		}
		example, err := render.NewData(ExamplePayload, f).Render()
		if err != nil {
			return nil, err
		}
		list.Formats = append(list.Formats, FormatInfo{
			Name:      f.String(),
			Extension: f.Extension(),
			Saver:     saver.Name(s),
			Example:   example,
		})
	}
	return list, nil
}
