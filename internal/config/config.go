package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultRootPath  = "."
	DefaultStatePath = "~/.f2yaml/state.db"

	// EnvPrefix prefixes environment overrides, e.g. F2YAML_ROOT_PATH
	EnvPrefix = "F2YAML"
)

// Config holds the user settings
type Config struct {
	RootPath       string   `mapstructure:"root_path"`
	IgnoreWords    []string `mapstructure:"ignore_words"`
	PathSeparator  string   `mapstructure:"path_separator"`
	UserName       string   `mapstructure:"user_name"`
	CSVFields      []string `mapstructure:"csv_fields"`
	StatePath      string   `mapstructure:"state_path"`
	FileExtensions []string `mapstructure:"file_extensions"`
}

// DefaultConfig returns the built-in settings
func DefaultConfig() *Config {
	return &Config{
		RootPath:       DefaultRootPath,
		IgnoreWords:    []string{"TODO", "DOING", "DONE", "BLOCKED"},
		PathSeparator:  "/",
		UserName:       os.Getenv("USER"),
		CSVFields:      []string{"TaskStatus", "SummaryLink"},
		StatePath:      DefaultStatePath,
		FileExtensions: []string{".yml", ".yaml"},
	}
}

// Load merges the global config, the project config and F2YAML_*
// environment variables over the defaults.
func Load() (*Config, error) {
	return LoadFrom(GlobalConfigPath(), ProjectConfigPath())
}

// LoadFrom merges the given config files, in order, then the environment.
// Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	def := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("root_path", def.RootPath)
	v.SetDefault("ignore_words", def.IgnoreWords)
	v.SetDefault("path_separator", def.PathSeparator)
	v.SetDefault("user_name", def.UserName)
	v.SetDefault("csv_fields", def.CSVFields)
	v.SetDefault("state_path", def.StatePath)
	v.SetDefault("file_extensions", def.FileExtensions)

	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.RootPath = ExpandHome(cfg.RootPath)
	cfg.StatePath = ExpandHome(cfg.StatePath)
	return cfg, nil
}

// ExpandHome replaces a leading ~ with the home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// GlobalConfigPath returns the path to the global config file
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".f2yaml", "config.yaml")
}

// ProjectConfigPath returns the path to the project config file
func ProjectConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, ".f2yaml", "config.yaml")
}
