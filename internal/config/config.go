package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/v1k45/gogett/internal/services/gett"
)

// Config represents the main application configuration
type Config struct {
	Loglevel string     `toml:"loglevel"`
	Gett     GettConfig `toml:"gett"`
}

// GettConfig holds Ge.tt API credentials. Password may be left empty in
// the config file; the CLI prompts for it instead.
type GettConfig struct {
	APIKey   string `toml:"api_key"`
	Email    string `toml:"email"`
	Password string `toml:"password"`
	BaseURL  string `toml:"base_url"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Loglevel: "info",
	}
}

// DefaultConfigPath returns the default configuration file path
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	// Use XDG config directory on Linux, Application Support on macOS
	configDir := filepath.Join(homeDir, ".config", "gogett")

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads configuration from a TOML file
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Gett.APIKey == "" {
		return fmt.Errorf("gett.api_key is required")
	}
	if c.Gett.Email == "" {
		return fmt.Errorf("gett.email is required")
	}
	if !gett.ValidEmail(c.Gett.Email) {
		return fmt.Errorf("gett.email must be an email address")
	}
	if _, err := logrus.ParseLevel(c.Loglevel); err != nil {
		return fmt.Errorf("loglevel must be one of: panic, fatal, error, warn, info, debug, trace")
	}
	return nil
}
