// Package config loads host configuration and persists per-plugin settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all host configuration settings.
type Config struct {
	// Plugin configuration
	Plugin struct {
		Path string
	}
	// Logging configuration
	Log struct {
		Level  string
		Format string
	}
	// Viewer shell configuration
	Viewer struct {
		Title string
	}

	v *viper.Viper
}

// Load reads the configuration from config.yaml, creating a default file
// under $HOME/.strata on first run. Environment variables prefixed STRATA
// override file values.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.strata")
	v.AddConfigPath("/etc/strata/")

	setDefaults(v)

	v.SetEnvPrefix("STRATA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := ensureConfig(); err != nil {
		return nil, fmt.Errorf("error creating config file: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		// Defaults apply when no config file is found.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{v: v}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	return cfg, nil
}

// setDefaults sets default values for all configuration options.
func setDefaults(v *viper.Viper) {
	v.SetDefault("plugin.path", "plugins")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "human")
	v.SetDefault("viewer.title", "strata")
}

// ensureConfig creates a default config file if none exists.
func ensureConfig() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	dir := filepath.Join(home, ".strata")
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	configFile := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		defaultConfig := `# Strata Configuration File
plugin:
  path: plugins

log:
  level: info
  format: human

viewer:
  title: strata
`
		if err := os.WriteFile(configFile, []byte(defaultConfig), 0o644); err != nil {
			return err
		}
	}

	return nil
}

// Viper returns the underlying viper instance.
func (c *Config) Viper() *viper.Viper {
	return c.v
}
