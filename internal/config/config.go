package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Environment overrides. Secrets are usually injected this way rather than
// written to the config file.
const (
	EnvStorageKey = "BADGEDESK_STORAGE_KEY"
	EnvBadgeURL   = "BADGEDESK_BADGE_URL"
	EnvDevTools   = "BADGEDESK_DEVTOOLS_ADDR"
)

// Config represents the badgedesk configuration
type Config struct {
	BadgeBaseURL string         `yaml:"badge_base_url"`
	DBPath       string         `yaml:"db_path,omitempty"` // empty = ~/.badgedesk/badgedesk.db
	Sound        bool           `yaml:"sound"`             // ring the terminal bell on arrivals
	Storage      StorageConfig  `yaml:"storage"`
	DevTools     DevToolsConfig `yaml:"devtools"`
	Dispatch     DispatchConfig `yaml:"dispatch"`
	Log          LogConfig      `yaml:"log"`
}

// StorageConfig points at the object storage holding captured photos.
// Leaving URL empty disables signing; internal paths are then passed through.
type StorageConfig struct {
	URL          string        `yaml:"url,omitempty"`
	Bucket       string        `yaml:"bucket,omitempty"`
	APIKey       string        `yaml:"api_key,omitempty"`
	SignedURLTTL time.Duration `yaml:"signed_url_ttl"`
}

// DevToolsConfig locates the browser's remote-debugging endpoint.
type DevToolsConfig struct {
	Addr string `yaml:"addr"`
}

// DispatchConfig tunes the intake loop.
type DispatchConfig struct {
	MinInterval  time.Duration `yaml:"min_interval"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		BadgeBaseURL: "http://localhost:5173/",
		Sound:        true,
		Storage: StorageConfig{
			Bucket:       "photos",
			SignedURLTTL: 15 * time.Minute,
		},
		DevTools: DevToolsConfig{Addr: "127.0.0.1:9222"},
		Dispatch: DispatchConfig{
			MinInterval:  2 * time.Second,
			PollInterval: time.Second,
		},
		Log: LogConfig{Level: "info"},
	}
}

// DefaultPath returns ~/.badgedesk/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".badgedesk", "config.yaml"), nil
}

// LoadConfig reads the YAML config at path over the defaults and applies
// environment overrides. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvStorageKey); v != "" {
		c.Storage.APIKey = v
	}
	if v := os.Getenv(EnvBadgeURL); v != "" {
		c.BadgeBaseURL = v
	}
	if v := os.Getenv(EnvDevTools); v != "" {
		c.DevTools.Addr = v
	}
}

// SaveConfig writes cfg to path as YAML.
func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// May hold the storage key.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BadgeBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("badge_base_url must be an absolute http(s) URL, got %q", c.BadgeBaseURL)
	}
	if c.Storage.URL != "" {
		if !strings.HasPrefix(c.Storage.URL, "http://") && !strings.HasPrefix(c.Storage.URL, "https://") {
			return fmt.Errorf("storage.url must be an http(s) URL, got %q", c.Storage.URL)
		}
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage.bucket is required when storage.url is set")
		}
	}
	if c.Storage.SignedURLTTL < time.Second {
		return fmt.Errorf("storage.signed_url_ttl must be at least 1s, got %s", c.Storage.SignedURLTTL)
	}
	if c.DevTools.Addr == "" {
		return fmt.Errorf("devtools.addr is required")
	}
	if c.Dispatch.MinInterval <= 0 {
		return fmt.Errorf("dispatch.min_interval must be positive, got %s", c.Dispatch.MinInterval)
	}
	if c.Dispatch.PollInterval <= 0 {
		return fmt.Errorf("dispatch.poll_interval must be positive, got %s", c.Dispatch.PollInterval)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// StorageEnabled reports whether internal paths should be signed.
func (c *Config) StorageEnabled() bool {
	return c.Storage.URL != ""
}
