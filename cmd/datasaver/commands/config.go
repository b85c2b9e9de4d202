package commands

import (
	"fmt"
	"strings"

	"github.com/andri/datasaver/pkg/config"
	"github.com/andri/datasaver/pkg/output"
	"github.com/spf13/cobra"
)

// ConfigShowOptions holds options for the config show command
type ConfigShowOptions struct {
	Format string
}

// ConfigValidateOptions holds options for the config validate command
type ConfigValidateOptions struct {
	ConfigFile string
	Format     string
}

// newConfigCmd creates the config subcommand with its subcommands
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage datasaver configuration.

Configuration is loaded from multiple sources in order of precedence:
  1. CLI flags (highest priority)
  2. Environment variables (DATASAVER_* prefix, e.g. DATASAVER_OUTPUT_FORMAT)
  3. Config file (./datasaver.yaml, $XDG_CONFIG_HOME/datasaver/config.yaml, /etc/datasaver/config.yaml)
  4. Default values (lowest priority)`,
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigValidateCmd())

	return cmd
}

// newConfigShowCmd creates the config show subcommand
func newConfigShowCmd() *cobra.Command {
	opts := &ConfigShowOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long: `Show the effective configuration after merging all sources,
including the source file if one was loaded.`,
		Example: `  # Show configuration in YAML format (default)
  datasaver config show

  # Show configuration in TOML format
  datasaver config show -o toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "output", "o", "yaml",
		"output format: yaml, json, toml")

	return cmd
}

// newConfigValidateCmd creates the config validate subcommand
func newConfigValidateCmd() *cobra.Command {
	opts := &ConfigValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate configuration",
		Long: `Validate configuration file and report any errors or warnings.

Returns exit code 0 if configuration is valid, 1 if there are errors.
Warnings are reported but don't affect the exit code.`,
		Example: `  # Validate default configuration
  datasaver config validate

  # Validate a specific config file
  datasaver config validate /path/to/config.yaml

  # Output validation results as JSON
  datasaver config validate -o json`,
		Args: cobra.MaximumNArgs(1),
		// Validation reports load errors itself, so skip the root loader.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.ConfigFile = args[0]
			}
			return runConfigValidate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "output", "o", "text",
		"output format: text, json, yaml, toml")

	return cmd
}

// ConfigOutput represents the configuration output structure
type ConfigOutput struct {
	ConfigFile string        `json:"configFile,omitempty" yaml:"configFile,omitempty" toml:"configFile,omitempty"`
	Config     config.Config `json:"config" yaml:"config" toml:"config"`
}

// ValidationOutput represents validation results for output
type ValidationOutput struct {
	ConfigFile string   `json:"configFile,omitempty" yaml:"configFile,omitempty" toml:"configFile,omitempty"`
	Valid      bool     `json:"valid" yaml:"valid" toml:"valid"`
	Errors     []string `json:"errors,omitempty" yaml:"errors,omitempty" toml:"errors,omitempty"`
	Warnings   []string `json:"warnings,omitempty" yaml:"warnings,omitempty" toml:"warnings,omitempty"`
}

func runConfigShow(cmd *cobra.Command, opts *ConfigShowOptions) error {
	report := ConfigOutput{
		ConfigFile: GlobalOptions.ConfigFileUsed,
		Config:     GlobalOptions.Config,
	}

	format := output.Format(strings.ToLower(opts.Format))
	if format == output.FormatTable {
		return fmt.Errorf("unknown config format: %s (valid formats: yaml, json, toml)", opts.Format)
	}
	if err := output.Render(cmd.OutOrStdout(), report, format); err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	return nil
}

func runConfigValidate(cmd *cobra.Command, opts *ConfigValidateOptions) error {
	out := cmd.OutOrStdout()

	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = GlobalOptions.ConfigFile
	}

	result, loadErr := config.LoadConfig(config.LoadOptions{ConfigFile: configFile})

	report := ValidationOutput{
		ConfigFile: result.ConfigFileUsed,
		Valid:      true,
	}

	// A validation failure is reported through result.Validation below.
	if loadErr != nil && !result.Validation.HasErrors() {
		report.Valid = false
		report.Errors = append(report.Errors, loadErr.Error())
	}
	for _, err := range result.Validation.Errors {
		report.Valid = false
		report.Errors = append(report.Errors, err.Error())
	}
	report.Warnings = append(report.Warnings, result.Validation.Warnings...)

	switch format := strings.ToLower(opts.Format); format {
	case "json", "yaml", "toml":
		if err := output.Render(out, report, output.Format(format)); err != nil {
			return fmt.Errorf("failed to render validation result: %w", err)
		}

	default: // text
		if report.ConfigFile != "" {
			_, _ = fmt.Fprintf(out, "Config file: %s\n\n", report.ConfigFile)
		} else {
			_, _ = fmt.Fprint(out, "Config file: (none - using defaults)\n\n")
		}

		if report.Valid {
			_, _ = fmt.Fprintln(out, "Configuration is valid.")
		} else {
			_, _ = fmt.Fprintln(out, "Configuration has errors:")
			for _, err := range report.Errors {
				_, _ = fmt.Fprintf(out, "  - %s\n", err)
			}
		}

		if len(report.Warnings) > 0 {
			_, _ = fmt.Fprintln(out, "\nWarnings:")
			for _, warn := range report.Warnings {
				_, _ = fmt.Fprintf(out, "  - %s\n", warn)
			}
		}
	}

	// The actual errors have been printed; return a generic error for the exit code.
	if !report.Valid {
		return fmt.Errorf("configuration validation failed")
	}

	return nil
}
