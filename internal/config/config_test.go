package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

// TestDefaultConfig verifies default configuration values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Service.BaseURL != "http://localhost:5000" {
		t.Errorf("Service.BaseURL = %q, want http://localhost:5000", cfg.Service.BaseURL)
	}
	if cfg.Service.Timeout != 30*time.Second {
		t.Errorf("Service.Timeout = %v, want 30s", cfg.Service.Timeout)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled = false, want true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestLoadConfigValidFile(t *testing.T) {
	path := writeConfig(t, `service:
  base_url: https://screening.example.org
  timeout: 45s
log_level: debug
color: never
draft_path: /tmp/draft.yaml
history:
  enabled: false
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Service.BaseURL != "https://screening.example.org" {
		t.Errorf("Service.BaseURL = %q", cfg.Service.BaseURL)
	}
	if cfg.Service.Timeout != 45*time.Second {
		t.Errorf("Service.Timeout = %v, want 45s", cfg.Service.Timeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Color != "never" {
		t.Errorf("Color = %q, want never", cfg.Color)
	}
	if cfg.DraftPath != "/tmp/draft.yaml" {
		t.Errorf("DraftPath = %q", cfg.DraftPath)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled = true, want false (explicitly disabled)")
	}
	if cfg.History.DBPath != "history.db" {
		t.Errorf("History.DBPath = %q, want default history.db", cfg.History.DBPath)
	}
}

func TestLoadConfigFileNotExists(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("LoadConfig() should not error on missing file, got: %v", err)
	}
	if cfg.Service.Timeout != 30*time.Second {
		t.Errorf("Service.Timeout = %v, want default", cfg.Service.Timeout)
	}
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "log_level: error\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want error", cfg.LogLevel)
	}
	if cfg.Service.BaseURL != "http://localhost:5000" {
		t.Errorf("Service.BaseURL = %q, want default", cfg.Service.BaseURL)
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled should stay at default when section is absent")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "malformed yaml", content: "service: [unclosed", wantErr: "failed to parse config file"},
		{name: "bad timeout", content: "service:\n  timeout: soon\n", wantErr: "invalid service.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("LoadConfig() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigFromHomeResolvesPaths(t *testing.T) {
	home := t.TempDir()

	cfg, err := LoadConfigFromHome(home)
	if err != nil {
		t.Fatalf("LoadConfigFromHome() error = %v", err)
	}
	if cfg.DraftPath != filepath.Join(home, "draft.yaml") {
		t.Errorf("DraftPath = %q", cfg.DraftPath)
	}
	if cfg.History.DBPath != filepath.Join(home, "history.db") {
		t.Errorf("History.DBPath = %q", cfg.History.DBPath)
	}
}

func TestResolvePathsKeepsAbsoluteAndMemory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DraftPath = "/abs/draft.yaml"
	cfg.History.DBPath = ":memory:"

	cfg.ResolvePaths("/home/u/.aqscreen")

	if cfg.DraftPath != "/abs/draft.yaml" {
		t.Errorf("DraftPath = %q", cfg.DraftPath)
	}
	if cfg.History.DBPath != ":memory:" {
		t.Errorf("History.DBPath = %q", cfg.History.DBPath)
	}
}

func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()
	url := "http://scorer:8080"
	timeout := 5 * time.Second
	noHistory := true

	cfg.MergeWithFlags(&url, &timeout, nil, &noHistory)

	if cfg.Service.BaseURL != url {
		t.Errorf("Service.BaseURL = %q, want %q", cfg.Service.BaseURL, url)
	}
	if cfg.Service.Timeout != timeout {
		t.Errorf("Service.Timeout = %v, want %v", cfg.Service.Timeout, timeout)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel changed by nil flag: %q", cfg.LogLevel)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled = true, want false after --no-history")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero timeout allowed", mutate: func(c *Config) { c.Service.Timeout = 0 }},
		{name: "negative timeout", mutate: func(c *Config) { c.Service.Timeout = -time.Second }, wantErr: true},
		{name: "relative url", mutate: func(c *Config) { c.Service.BaseURL = "localhost:5000" }, wantErr: true},
		{name: "ftp url", mutate: func(c *Config) { c.Service.BaseURL = "ftp://host" }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "bad color", mutate: func(c *Config) { c.Color = "rainbow" }, wantErr: true},
		{name: "history without db", mutate: func(c *Config) { c.History.DBPath = "" }, wantErr: true},
		{name: "disabled history without db", mutate: func(c *Config) {
			c.History.Enabled = false
			c.History.DBPath = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateNormalizesLogLevel(t *testing.T) {
	for _, level := range []string{"DEBUG", "Warn", " info "} {
		t.Run(level, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.LogLevel = level
			if err := cfg.Validate(); err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if want := strings.ToLower(strings.TrimSpace(level)); cfg.LogLevel != want {
				t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, want)
			}
		})
	}
}

func TestGetHomeWithEnvVar(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "nested", "home")
	t.Setenv(HomeEnv, custom)

	home, err := GetHome()
	if err != nil {
		t.Fatalf("GetHome() error = %v", err)
	}
	if home != custom {
		t.Errorf("GetHome() = %q, want %q", home, custom)
	}
	if _, err := os.Stat(custom); err != nil {
		t.Errorf("home directory not created: %v", err)
	}
}
