package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"text/template"

	"github.com/andri/datasaver/pkg/render"
)

// ValidationError wraps a ValidationResult as an error.
// It provides actionable error messages that include all validation issues.
type ValidationError struct {
	Result ValidationResult
}

// Error implements the error interface, returning all validation errors as a single message.
func (e *ValidationError) Error() string {
	if len(e.Result.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Result.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Result.Errors[0])
	}
	var b strings.Builder
	b.WriteString("configuration validation failed:")
	for _, err := range e.Result.Errors {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying errors joined together.
func (e *ValidationError) Unwrap() error {
	return errors.Join(e.Result.Errors...)
}

// ValidationResult captures validation errors and warnings.
type ValidationResult struct {
	Errors   []error
	Warnings []string
}

// HasErrors reports whether validation errors exist.
func (r ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings reports whether validation warnings exist.
func (r ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Allowed values for enumerated settings.
var (
	allowedLogLevels  = []string{"debug", "info", "warn", "warning", "error"}
	allowedLogFormats = []string{"text", "json"}
	allowedOverwrite  = []string{OverwritePrompt, OverwriteAlways, OverwriteNever}
)

// ValidateConfig validates configuration values and returns all issues.
func ValidateConfig(cfg Config) ValidationResult {
	var result ValidationResult

	if _, err := render.ParseFormat(cfg.Output.Format); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("output.format: %w", err))
	}

	if strings.TrimSpace(cfg.Output.PathTemplate) == "" {
		result.Errors = append(result.Errors, errors.New("output.path-template must not be empty"))
	} else if _, err := template.New("output-path").Parse(cfg.Output.PathTemplate); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("output.path-template: %w", err))
	}

	if !slices.Contains(allowedOverwrite, cfg.Output.Overwrite) {
		result.Errors = append(result.Errors, fmt.Errorf(
			"invalid output.overwrite %q: allowed values are %v",
			cfg.Output.Overwrite, allowedOverwrite))
	}

	if cfg.Output.Append && cfg.Output.Atomic {
		result.Warnings = append(result.Warnings,
			"output.append=true disables output.atomic - appended writes are not atomic")
	}
	if cfg.Output.Append && cfg.Backup.Enabled {
		result.Warnings = append(result.Warnings,
			"backup.enabled has no effect when output.append=true")
	}

	// Validate logging.level
	if cfg.Logging.Level != "" && !slices.Contains(allowedLogLevels, cfg.Logging.Level) {
		result.Errors = append(result.Errors, fmt.Errorf(
			"invalid logging.level %q: allowed values are %v",
			cfg.Logging.Level, allowedLogLevels))
	}

	// Validate logging.format
	if cfg.Logging.Format != "" && !slices.Contains(allowedLogFormats, cfg.Logging.Format) {
		result.Errors = append(result.Errors, fmt.Errorf(
			"invalid logging.format %q: allowed values are %v",
			cfg.Logging.Format, allowedLogFormats))
	}

	return result
}
