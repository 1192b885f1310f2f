// Package config loads the gallery client configuration.
//
// Precedence (lowest to highest): built-in defaults, config.yaml, .env, process
// environment, command-line flags (applied by the caller).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvConfigDir   = "GALLERY_CONFIG_DIR"
	EnvEndpoint    = "GALLERY_ENDPOINT"
	EnvAdminSecret = "GALLERY_ADMIN_SECRET"
	EnvTimeout     = "GALLERY_TIMEOUT"
	EnvLogFile     = "GALLERY_LOG_FILE"

	defaultTimeout = "30s"
)

// Config holds the static startup configuration.
type Config struct {
	// Endpoint is the single backend URL (e.g. a script web-app /exec URL).
	Endpoint string `yaml:"endpoint"`

	// AdminSecret is the shared password that unlocks admin controls in the UI.
	// It is a UI gate only; the backend does not check it.
	AdminSecret string `yaml:"admin_secret"`

	// Timeout bounds every remote call (Go duration, e.g. "30s").
	Timeout string `yaml:"timeout"`

	LogFile string `yaml:"log_file"`
	Debug   bool   `yaml:"debug"`
}

func DefaultConfig() *Config {
	return &Config{Timeout: defaultTimeout}
}

// Dir returns the configuration directory (GALLERY_CONFIG_DIR or ~/.prompt-gallery).
func Dir() (string, error) {
	// Test/advanced override (keeps unit tests from touching the home directory).
	if v := strings.TrimSpace(os.Getenv(EnvConfigDir)); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".prompt-gallery"), nil
}

func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads path (or the default path when empty). A missing file yields defaults.
// .env and environment overrides are applied on top.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if strings.TrimSpace(path) == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	if strings.TrimSpace(cfg.Timeout) == "" {
		cfg.Timeout = defaultTimeout
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv(EnvEndpoint)); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv(EnvAdminSecret); v != "" {
		c.AdminSecret = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		c.Timeout = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		c.LogFile = v
	}
}

// GetTimeout parses Timeout, falling back to the default on bad input.
func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.Timeout))
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(defaultTimeout)
	}
	return d
}

// Validate checks the fields required to talk to the backend.
func (c *Config) Validate() error {
	ep := strings.TrimSpace(c.Endpoint)
	if ep == "" {
		return fmt.Errorf("no backend endpoint configured (set endpoint in config.yaml, %s, or --endpoint)", EnvEndpoint)
	}
	u, err := url.Parse(ep)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("endpoint must be an absolute http(s) URL: %q", ep)
	}
	if t := strings.TrimSpace(c.Timeout); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", t, err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout must be positive: %q", t)
		}
	}
	return nil
}
