// Package config loads and validates datasaver configuration.
package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultOutputFormat  = "text"
	DefaultPathTemplate  = "./data.{{.Ext}}"
	DefaultOverwrite     = OverwritePrompt
	DefaultBackupEnabled = true
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "text"
)

// Overwrite policies for existing output files.
const (
	OverwritePrompt = "prompt"
	OverwriteAlways = "always"
	OverwriteNever  = "never"
)

// Config holds the full configuration schema for datasaver.
type Config struct {
	Output  OutputConfig  `mapstructure:"output" yaml:"output" json:"output" toml:"output"`
	Backup  BackupConfig  `mapstructure:"backup" yaml:"backup" json:"backup" toml:"backup"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" json:"logging" toml:"logging"`
}

// OutputConfig controls how rendered data is written.
type OutputConfig struct {
	// Format is the default data format: text, html or json.
	Format string `mapstructure:"format" yaml:"format" json:"format" toml:"format"`

	// PathTemplate is a text/template for the output path; {{.Format}} and {{.Ext}} are available.
	PathTemplate string `mapstructure:"path-template" yaml:"path-template" json:"path-template" toml:"path-template"`

	// Append writes after existing content instead of replacing it.
	Append bool `mapstructure:"append" yaml:"append" json:"append" toml:"append"`

	// Atomic stages output in a temp file and renames it into place.
	Atomic bool `mapstructure:"atomic" yaml:"atomic" json:"atomic" toml:"atomic"`

	// Strict refuses to save data with a saver bound to a different format.
	Strict bool `mapstructure:"strict" yaml:"strict" json:"strict" toml:"strict"`

	// Overwrite is the policy for existing files: prompt, always or never.
	Overwrite string `mapstructure:"overwrite" yaml:"overwrite" json:"overwrite" toml:"overwrite"`
}

// BackupConfig controls backups of replaced output files.
type BackupConfig struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled" json:"enabled" toml:"enabled"`
	Directory string `mapstructure:"directory" yaml:"directory" json:"directory" toml:"directory"`
}

// LoggingConfig controls log output settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level" toml:"level"`
	File   string `mapstructure:"file" yaml:"file" json:"file" toml:"file"`
	Format string `mapstructure:"format" yaml:"format" json:"format" toml:"format"`
}

// DefaultConfig returns a config with all default values applied.
func DefaultConfig() Config {
	return Config{
		Output: OutputConfig{
			Format:       DefaultOutputFormat,
			PathTemplate: DefaultPathTemplate,
			Atomic:       true,
			Overwrite:    DefaultOverwrite,
		},
		Backup: BackupConfig{
			Enabled: DefaultBackupEnabled,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// String renders the configuration as YAML.
func (c Config) String() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}

	return strings.TrimSpace(string(data))
}
