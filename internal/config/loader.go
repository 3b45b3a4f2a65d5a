package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/botstat/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".botstat.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/botstat"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix is prepended to every environment override, e.g. BOTSTAT_ENDPOINT.
	EnvPrefix = "BOTSTAT"
)

// Load reads config from the specified path. An empty path loads defaults
// plus any BOTSTAT_* environment overrides.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found",
					"Run 'botstat init' to create a config file, or specify one with --config")
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML")
		}
	}

	// Every key has a viper default, so an empty struct comes back fully populated.
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+displayPath(path))
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")

	return cfg, nil
}

// newViper returns a viper instance with defaults and env binding set up.
func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults registers every key so env overrides are picked up by Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", CurrentConfigVersion)
	v.SetDefault("endpoint", DefaultEndpoint)
	v.SetDefault("path", DefaultPath)
	v.SetDefault("interval", DefaultInterval.String())
	v.SetDefault("intervals", durationStrings(DefaultIntervals()))
	v.SetDefault("history_size", DefaultHistorySize)
	v.SetDefault("timeout", "0s")
	v.SetDefault("serve.addr", DefaultServeAddr)
	v.SetDefault("chart.output", DefaultChartOutput)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .botstat.yaml in current directory
// 3. .botstat.yaml in parent directories (stops at git root or home)
// 4. ~/.config/botstat/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	home, _ := os.UserHomeDir()
	if path := findUpwards(cwd, home); path != "" {
		return path, nil
	}

	if home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// findUpwards checks dir and its parents for ConfigFileName. The walk stops
// after a git root, at home, or at the filesystem root.
func findUpwards(dir, home string) string {
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		if isGitRoot(dir) {
			return ""
		}

		parent := filepath.Dir(dir)
		if parent == dir || (home != "" && parent == home) {
			return ""
		}
		dir = parent
	}
}

// LoadOrDefault finds and loads the config, or returns defaults (with env
// overrides) when no file exists.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// isGitRoot checks if a directory is a git repository root.
func isGitRoot(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

func displayPath(path string) string {
	if path == "" {
		return "environment overrides"
	}
	return path
}
