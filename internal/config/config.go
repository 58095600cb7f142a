package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ServiceConfig represents the remote scoring service settings
type ServiceConfig struct {
	// BaseURL is the root of the scoring service (POST {BaseURL}/api/predict)
	BaseURL string `yaml:"base_url"`

	// Timeout bounds a single request; an expired request is a transport failure
	Timeout time.Duration `yaml:"timeout"`
}

// HistoryConfig represents local result history settings
type HistoryConfig struct {
	// Enabled records every submission attempt
	Enabled bool `yaml:"enabled"`

	// DBPath is the SQLite database path, relative to the aqscreen home
	DBPath string `yaml:"db_path"`
}

// Config represents aqscreen configuration options
type Config struct {
	Service ServiceConfig `yaml:"service"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Color controls colored output: auto, always, never
	Color string `yaml:"color"`

	// DraftPath is where unfinished answers are kept, relative to the aqscreen home
	DraftPath string `yaml:"draft_path"`

	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			BaseURL: "http://localhost:5000",
			Timeout: 30 * time.Second,
		},
		LogLevel:  "warn",
		Color:     "auto",
		DraftPath: "draft.yaml",
		History: HistoryConfig{
			Enabled: true,
			DBPath:  "history.db",
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations are parsed by hand so "45s" style strings are accepted
	type yamlService struct {
		BaseURL string `yaml:"base_url"`
		Timeout string `yaml:"timeout"`
	}
	type yamlConfig struct {
		Service   yamlService   `yaml:"service"`
		LogLevel  string        `yaml:"log_level"`
		Color     string        `yaml:"color"`
		DraftPath string        `yaml:"draft_path"`
		History   HistoryConfig `yaml:"history"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.Service.BaseURL != "" {
		cfg.Service.BaseURL = yamlCfg.Service.BaseURL
	}
	if yamlCfg.Service.Timeout != "" {
		timeout, err := time.ParseDuration(yamlCfg.Service.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid service.timeout format %q: %w", yamlCfg.Service.Timeout, err)
		}
		cfg.Service.Timeout = timeout
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.Color != "" {
		cfg.Color = yamlCfg.Color
	}
	if yamlCfg.DraftPath != "" {
		cfg.DraftPath = yamlCfg.DraftPath
	}

	// history.enabled may be explicitly false, so check which keys were present
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if section, ok := rawMap["history"].(map[string]interface{}); ok {
			if _, exists := section["enabled"]; exists {
				cfg.History.Enabled = yamlCfg.History.Enabled
			}
			if _, exists := section["db_path"]; exists {
				cfg.History.DBPath = yamlCfg.History.DBPath
			}
		}
	}

	return cfg, nil
}

// LoadConfigFromHome loads config.yaml from the aqscreen home directory and
// resolves relative paths against it
func LoadConfigFromHome(home string) (*Config, error) {
	cfg, err := LoadConfig(filepath.Join(home, "config.yaml"))
	if err != nil {
		return nil, err
	}
	cfg.ResolvePaths(home)
	return cfg, nil
}

// ResolvePaths makes relative file paths absolute under home
func (c *Config) ResolvePaths(home string) {
	if c.DraftPath != "" && !filepath.IsAbs(c.DraftPath) {
		c.DraftPath = filepath.Join(home, c.DraftPath)
	}
	if c.History.DBPath != "" && c.History.DBPath != ":memory:" && !filepath.IsAbs(c.History.DBPath) {
		c.History.DBPath = filepath.Join(home, c.History.DBPath)
	}
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(baseURL *string, timeout *time.Duration, logLevel *string, noHistory *bool) {
	if baseURL != nil {
		c.Service.BaseURL = *baseURL
	}
	if timeout != nil {
		c.Service.Timeout = *timeout
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if noHistory != nil && *noHistory {
		c.History.Enabled = false
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	u, err := url.Parse(c.Service.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("service.base_url must be an absolute http(s) URL, got %q", c.Service.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("service.base_url scheme must be http or https, got %q", u.Scheme)
	}

	// Zero disables the timeout; negative is invalid
	if c.Service.Timeout < 0 {
		return fmt.Errorf("service.timeout must be >= 0, got %v", c.Service.Timeout)
	}

	// Log levels are case-insensitive, like the logger itself
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color %q, must be one of: auto, always, never", c.Color)
	}

	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("history.db_path cannot be empty when history is enabled")
	}

	return nil
}
