package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. DATASAVER_OUTPUT_FORMAT.
const EnvPrefix = "DATASAVER"

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	ConfigFile  string
	ConfigFiles []string
	Flags       *pflag.FlagSet
}

// LoadResult contains the merged configuration and validation output.
type LoadResult struct {
	Config         Config
	Validation     ValidationResult
	ConfigFileUsed string
}

// LoadConfig loads configuration from defaults, file, env, and flags.
func LoadConfig(opts LoadOptions) (LoadResult, error) {
	v := viper.New()
	setDefaults(v)
	configureEnv(v)

	if opts.Flags != nil {
		if err := BindFlags(v, opts.Flags); err != nil {
			return LoadResult{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	configPath, err := resolveConfigFile(opts)
	if err != nil {
		return LoadResult{}, err
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return LoadResult{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return LoadResult{}, fmt.Errorf("unmarshal config: %w", err)
	}

	result := LoadResult{
		Config:         cfg,
		Validation:     ValidateConfig(cfg),
		ConfigFileUsed: v.ConfigFileUsed(),
	}
	if result.Validation.HasErrors() {
		return result, &ValidationError{Result: result.Validation}
	}

	return result, nil
}

// BindFlags binds supported CLI flags to viper keys.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	bindings := map[string]string{
		"format":     "output.format",
		"template":   "output.path-template",
		"append":     "output.append",
		"atomic":     "output.atomic",
		"strict":     "output.strict",
		"overwrite":  "output.overwrite",
		"backup":     "backup.enabled",
		"backup-dir": "backup.directory",
		"log-level":  "logging.level",
		"log-file":   "logging.file",
		"log-format": "logging.format",
	}

	for flag, key := range bindings {
		if flags.Lookup(flag) == nil {
			continue
		}
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %q: %w", flag, err)
		}
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.path-template", defaults.Output.PathTemplate)
	v.SetDefault("output.append", defaults.Output.Append)
	v.SetDefault("output.atomic", defaults.Output.Atomic)
	v.SetDefault("output.strict", defaults.Output.Strict)
	v.SetDefault("output.overwrite", defaults.Output.Overwrite)

	v.SetDefault("backup.enabled", defaults.Backup.Enabled)
	v.SetDefault("backup.directory", defaults.Backup.Directory)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.file", defaults.Logging.File)
	v.SetDefault("logging.format", defaults.Logging.Format)
}

func configureEnv(v *viper.Viper) {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	v.SetEnvKeyReplacer(replacer)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
}

func resolveConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("config file not found: %s", opts.ConfigFile)
			}
			return "", fmt.Errorf("config file error: %w", err)
		}
		return opts.ConfigFile, nil
	}

	candidates := opts.ConfigFiles
	if len(candidates) == 0 {
		candidates = DefaultConfigFiles()
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		info, err := os.Stat(candidate)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return "", fmt.Errorf("config file error: %w", err)
		}
		if info.IsDir() {
			continue
		}
		return candidate, nil
	}

	return "", nil
}

// DefaultConfigFiles lists the config file search path in priority order.
func DefaultConfigFiles() []string {
	return []string{
		"./datasaver.yaml",
		"./datasaver.toml",
		filepath.Join(xdg.ConfigHome, "datasaver", "config.yaml"),
		filepath.Join(xdg.ConfigHome, "datasaver", "config.toml"),
		"/etc/datasaver/config.yaml",
	}
}
