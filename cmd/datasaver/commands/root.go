// Package commands provides the CLI command implementations for datasaver.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/andri/datasaver/internal/logger"
	"github.com/andri/datasaver/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// version information set by build flags
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	buildDate = d
}

// RootOptions holds the global options for all commands
type RootOptions struct {
	// ConfigFile is the path to the configuration file
	ConfigFile string

	// LogLevel sets the logging level (debug, info, warn, error)
	LogLevel string

	// LogFile sets the file path for log output
	LogFile string

	// Config holds the loaded configuration
	Config config.Config

	// ConfigFileUsed is the config file that was read, if any
	ConfigFileUsed string

	// logCloser closes the log file, if one was opened
	logCloser io.Closer
}

// GlobalOptions is the singleton instance for root options
var GlobalOptions = &RootOptions{}

// configFlags are the command flags that map onto configuration keys.
var configFlags = []string{
	"format", "template", "append", "atomic", "strict", "overwrite",
	"backup", "backup-dir", "log-level", "log-file", "log-format",
}

// NewRootCmd creates the root cobra command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "datasaver",
		Short: "Render data as text, HTML or JSON and save it",
		Long: `datasaver - render a payload and save it

A payload is rendered in one of three formats and written to a file or
standard output by a saver:

  text   the payload unchanged
  html   the payload wrapped in <html>...</html>
  json   a single-key object: { "data": "<payload>"}

Rendering and saving are independent: any saver can write any rendering.
Enable strict mode to refuse a saver whose format differs from the data's.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initializeGlobals(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			cleanup()
		},
	}

	addGlobalFlags(rootCmd)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSaveCmd())
	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newFormatsCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// addGlobalFlags adds the global flags to the root command
func addGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVar(&GlobalOptions.ConfigFile, "config", "",
		"config file (default: ./datasaver.yaml, $XDG_CONFIG_HOME/datasaver/config.yaml, /etc/datasaver/config.yaml)")
	flags.StringVar(&GlobalOptions.LogLevel, "log-level", "",
		"log level: debug, info, warn, error (default: warn)")
	flags.StringVar(&GlobalOptions.LogFile, "log-file", "",
		"log file path (default: stderr)")
	flags.String("log-format", "", "log format: text, json (default: text)")
}

// initializeGlobals initializes global options from flags, env, and config file
func initializeGlobals(cmd *cobra.Command) error {
	result, err := config.LoadConfig(config.LoadOptions{
		ConfigFile: GlobalOptions.ConfigFile,
		Flags:      buildFlagSet(cmd),
	})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	GlobalOptions.Config = result.Config
	GlobalOptions.ConfigFileUsed = result.ConfigFileUsed

	if logErr := initLogger(); logErr != nil {
		return fmt.Errorf("failed to initialize logger: %w", logErr)
	}

	if result.ConfigFileUsed != "" {
		logger.Debug("loaded configuration", "file", result.ConfigFileUsed)
	}
	for _, warning := range result.Validation.Warnings {
		logger.Warn("configuration warning", "warning", warning)
	}

	return nil
}

// buildFlagSet creates a pflag.FlagSet from cobra command flags for config binding
func buildFlagSet(cmd *cobra.Command) *pflag.FlagSet {
	flags := pflag.NewFlagSet("config", pflag.ContinueOnError)

	for _, name := range configFlags {
		if flags.Lookup(name) != nil {
			continue
		}
		if localFlag := cmd.Flags().Lookup(name); localFlag != nil {
			flags.AddFlag(localFlag)
		} else if inheritedFlag := cmd.InheritedFlags().Lookup(name); inheritedFlag != nil {
			flags.AddFlag(inheritedFlag)
		}
	}

	return flags
}

// initLogger initializes the logger based on configuration
func initLogger() error {
	cfg := GlobalOptions.Config.Logging

	level, err := logger.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}

	var output io.Writer = os.Stderr
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", cfg.File, err)
		}
		output = f
		GlobalOptions.logCloser = f
	}

	format := logger.FormatText
	if cfg.Format == "json" {
		format = logger.FormatJSON
	}

	logger.SetDefault(logger.New(logger.Config{
		Level:  level,
		Format: format,
		Output: output,
	}))

	return nil
}

// cleanup performs any necessary cleanup before exit
func cleanup() {
	if GlobalOptions.logCloser != nil {
		_ = GlobalOptions.logCloser.Close()
		GlobalOptions.logCloser = nil
	}
}

// newVersionCmd creates the version subcommand
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print version, commit, and build date information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "datasaver version %s\n", version)
			_, _ = fmt.Fprintf(out, "  commit:     %s\n", commit)
			_, _ = fmt.Fprintf(out, "  build date: %s\n", buildDate)
		},
	}
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
