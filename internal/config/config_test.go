package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Listen != defaultListen || cfg.RequestTimeout != defaultTimeout {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600, got %v", info.Mode().Perm())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	in := DefaultConfig()
	in.Listen = "0.0.0.0:9000"
	in.APIURL = "http://example.test/api/"
	in.RequestTimeout = 3 * time.Second
	in.Maintenance = "0 3 * * *"
	in.DefaultView = "week"
	if err := Save(path, in); err != nil {
		t.Fatal(err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if out.Listen != "0.0.0.0:9000" || out.RequestTimeout != 3*time.Second || out.Maintenance != "0 3 * * *" {
		t.Fatalf("round trip mismatch %+v", out)
	}
	if out.APIURL != "http://example.test/api" {
		t.Fatalf("trailing slash should be trimmed, got %q", out.APIURL)
	}
}

func TestNormalizeFillsZeroValues(t *testing.T) {
	var c Config
	c.Normalize()
	if c.Listen == "" || c.APIURL == "" || c.LogLevel != "info" || c.DefaultView != "month" {
		t.Fatalf("normalize left zero values: %+v", c)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CALENDR_LISTEN", "127.0.0.1:7000")
	t.Setenv("CALENDR_LOG_LEVEL", "debug")
	t.Setenv("CALENDR_REQUEST_TIMEOUT", "2s")
	t.Setenv("CALENDR_MAINTENANCE", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Listen != "127.0.0.1:7000" || cfg.LogLevel != "debug" || cfg.RequestTimeout != 2*time.Second {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.Maintenance != "" {
		t.Fatalf("empty CALENDR_MAINTENANCE should disable maintenance, got %q", cfg.Maintenance)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"log level": func(c *Config) { c.LogLevel = "loud" },
		"api url":   func(c *Config) { c.APIURL = "localhost:5000" },
		"view":      func(c *Config) { c.DefaultView = "decade" },
	}
	for name, mutate := range cases {
		c := DefaultConfig()
		mutate(c)
		if err := c.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
