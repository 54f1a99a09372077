// Package config loads calendr settings from a YAML file with environment
// overrides. A missing file is created with defaults on first run.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultListen      = "127.0.0.1:5000"
	defaultAPIURL      = "http://127.0.0.1:5000/api"
	defaultTimeout     = 10 * time.Second
	defaultMaintenance = "@every 6h"
	defaultView        = "month"
	defaultVersion     = "1.0.0"
)

type Config struct {
	// Listen is the API server address.
	Listen string `yaml:"listen"`
	// DBPath is the SQLite file. Empty means the per-user default.
	DBPath string `yaml:"db_path"`
	// APIURL is where the terminal client finds the API, including /api.
	APIURL string `yaml:"api_url"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// Debug exposes internal error text in 500 responses.
	Debug bool `yaml:"debug"`
	// RequestTimeout bounds each client call.
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// Maintenance is a cron spec for the WAL checkpoint and orphan report.
	// Empty disables it.
	Maintenance string `yaml:"maintenance"`
	// DefaultView is the view the client opens in.
	DefaultView string `yaml:"default_view"`
	Version     string `yaml:"version"`
}

func DefaultConfig() *Config {
	return &Config{
		Listen:         defaultListen,
		APIURL:         defaultAPIURL,
		LogLevel:       "info",
		RequestTimeout: defaultTimeout,
		Maintenance:    defaultMaintenance,
		DefaultView:    defaultView,
		Version:        defaultVersion,
	}
}

// Normalize fills zero values with defaults.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	if c.APIURL == "" {
		c.APIURL = defaultAPIURL
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaultTimeout
	}
	if c.DefaultView == "" {
		c.DefaultView = defaultView
	}
	if c.Version == "" {
		c.Version = defaultVersion
	}
}

func (c Config) Validate() error {
	if c.Listen == "" {
		return errors.New("listen address is required")
	}
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("api_url must be an http(s) URL: %q", c.APIURL)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be > 0")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	switch c.DefaultView {
	case "day", "week", "4days", "month", "year", "schedule":
	default:
		return fmt.Errorf("invalid default view: %s", c.DefaultView)
	}
	return nil
}

// ApplyEnv overrides file values with CALENDR_* variables.
func (c *Config) ApplyEnv() {
	c.Listen = getenvDefault("CALENDR_LISTEN", c.Listen)
	c.DBPath = getenvDefault("CALENDR_DB", c.DBPath)
	c.APIURL = getenvDefault("CALENDR_API_URL", c.APIURL)
	c.LogLevel = getenvDefault("CALENDR_LOG_LEVEL", c.LogLevel)
	c.Debug = getenvBool("CALENDR_DEBUG", c.Debug)
	c.RequestTimeout = getenvDuration("CALENDR_REQUEST_TIMEOUT", c.RequestTimeout)
	if v, ok := os.LookupEnv("CALENDR_MAINTENANCE"); ok {
		c.Maintenance = strings.TrimSpace(v)
	}
}

// DefaultPath returns ~/.config/calendr/config.yaml
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "calendr", "config.yaml"), nil
}

// Load reads path, writing a default file first if none exists, then applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	var cfg *Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg = DefaultConfig()
		if err := Save(path, cfg); err != nil {
			return nil, fmt.Errorf("write default config: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		cfg = &Config{}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg atomically with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".calendr-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func getenvDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}
