// Package config provides configuration management for the localip CLI tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/fzdarsky/localaddr/pkg/netid"
)

const (
	appName        = "localip"
	configFileName = "config.yaml"
	envOutput      = "LOCALIP_OUTPUT"
	envFamily      = "LOCALIP_FAMILY"

	defaultOutput = "plain"
	defaultFamily = string(netid.FamilyIPv4)
)

// Config holds the defaults for the localip CLI tool.
type Config struct {
	Output string `yaml:"output"`
	Family string `yaml:"family"`
}

// Load loads configuration from file, environment variables, and applies
// defaults. Precedence order (highest to lowest):
// 1. Environment variables
// 2. Config file
// 3. Defaults
//
// Note: Command-line flags are applied by individual commands after calling Load().
func Load() (*Config, error) {
	cfg := &Config{
		Output: defaultOutput,
		Family: defaultFamily,
	}

	if err := cfg.loadFromFile(); err != nil {
		// Config file is optional, so we only return error if file exists but is invalid
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile loads configuration from the YAML config file.
func (c *Config) loadFromFile() error {
	dir, err := UserConfigDir()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, configFileName)

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is derived from os.UserConfigDir
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// loadFromEnv applies environment variable overrides.
func (c *Config) loadFromEnv() {
	if v := os.Getenv(envOutput); v != "" {
		c.Output = v
	}
	if v := os.Getenv(envFamily); v != "" {
		c.Family = v
	}
}

// Validate checks that the configured values are usable.
func (c *Config) Validate() error {
	switch c.Output {
	case "plain", "yaml", "json":
	default:
		return fmt.Errorf("invalid output format %q: must be 'plain', 'yaml' or 'json'", c.Output)
	}
	if !netid.Family(c.Family).Valid() {
		return fmt.Errorf("invalid address family %q: must be %q or %q", c.Family, netid.FamilyIPv4, netid.FamilyIPv6)
	}
	return nil
}

// UserConfigDir returns the OS-specific user configuration directory for
// localip.
// On Linux: ~/.config/localip
// On macOS: ~/Library/Application Support/localip
// On Windows: %APPDATA%\localip
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, appName), nil
}
