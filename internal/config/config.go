// Package config provides configuration management for bbc.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MaxDepthLimit is the largest accepted max_depth.
const MaxDepthLimit = 1024

// Config holds the bbc configuration.
type Config struct {
	MediaURL     string   `yaml:"media_url,omitempty"`
	ContentURL   string   `yaml:"content_url,omitempty"`
	ContentToken string   `yaml:"content_token,omitempty"`
	CodeStyle    string   `yaml:"code_style,omitempty"`
	MaxDepth     int      `yaml:"max_depth,omitempty"`
	Namespaces   []string `yaml:"namespaces,omitempty"`
	Copyright    string   `yaml:"copyright,omitempty"`
	OutputFormat string   `yaml:"output_format,omitempty"`
}

// Validate checks that the configured values are usable. Every field is
// optional.
func (c *Config) Validate() error {
	if c.ContentURL != "" {
		u, err := url.Parse(c.ContentURL)
		if err != nil || u.Host == "" {
			return fmt.Errorf("content_url %q is not a valid URL", c.ContentURL)
		}
		if u.Scheme != "https" && u.Scheme != "http" {
			return errors.New("content_url must use http or https")
		}
	}
	if c.MediaURL != "" {
		if _, err := url.Parse(c.MediaURL); err != nil {
			return fmt.Errorf("media_url %q is not a valid URL", c.MediaURL)
		}
	}
	if c.MaxDepth < 0 || c.MaxDepth > MaxDepthLimit {
		return fmt.Errorf("max_depth must be between 0 and %d", MaxDepthLimit)
	}
	switch c.OutputFormat {
	case "", "table", "json", "plain":
	default:
		return fmt.Errorf("output_format must be table, json or plain, got %q", c.OutputFormat)
	}
	return nil
}

// EnvVars lists every environment variable LoadFromEnv reads.
var EnvVars = []string{
	"BBC_MEDIA_URL", "BBC_CONTENT_URL", "BBC_CONTENT_TOKEN", "BBC_CODE_STYLE",
	"BBC_MAX_DEPTH", "BBC_NAMESPACES", "CONTENT_API_URL", "CONTENT_API_TOKEN",
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
// Precedence: BBC_* → CONTENT_* → existing config value
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("BBC_MEDIA_URL"); v != "" {
		c.MediaURL = v
	}
	if v := getEnvWithFallback("BBC_CONTENT_URL", "CONTENT_API_URL"); v != "" {
		c.ContentURL = v
	}
	if v := getEnvWithFallback("BBC_CONTENT_TOKEN", "CONTENT_API_TOKEN"); v != "" {
		c.ContentToken = v
	}
	if v := os.Getenv("BBC_CODE_STYLE"); v != "" {
		c.CodeStyle = v
	}
	// Malformed numbers are ignored rather than zeroing the file value.
	if v := os.Getenv("BBC_MAX_DEPTH"); v != "" {
		if depth, err := strconv.Atoi(v); err == nil {
			c.MaxDepth = depth
		}
	}
	if v := os.Getenv("BBC_NAMESPACES"); v != "" {
		c.Namespaces = splitList(v)
	}
}

// getEnvWithFallback returns the value of the primary env var, or the fallback if primary is empty.
func getEnvWithFallback(primary, fallback string) string {
	if v := os.Getenv(primary); v != "" {
		return v
	}
	return os.Getenv(fallback)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "bbc", "config.yml")
	}

	// Fall back to ~/.config/bbc/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".bbc", "config.yml")
	}

	return filepath.Join(home, ".config", "bbc", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The content token is a credential: user read/write only.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment
// variables. A missing file is not an error; a malformed one is.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
