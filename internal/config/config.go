// Package config handles vcadmin settings from ~/.vcadmin/config.yaml and
// VCADMIN_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// PasswordEnv names the environment variable consulted for the vCenter
// password before falling back to an interactive prompt. The password has no
// yaml field on purpose: it is never written to disk.
const PasswordEnv = "VCADMIN_PASSWORD"

const defaultTimeoutSeconds = 120

// Config holds connection and tool settings.
type Config struct {
	// Host is the vCenter hostname, IP address, or full SDK URL
	// (e.g. "vcenter.example.com" or "https://vcenter.example.com/sdk").
	Host string `yaml:"host"`

	// User is the vCenter login, e.g. "administrator@vsphere.local".
	User string `yaml:"user"`

	// Insecure skips TLS certificate verification, matching labs and
	// appliances with self-signed certificates.
	Insecure bool `yaml:"insecure,omitempty"`

	// TimeoutSeconds bounds each remote call including its task wait.
	// Zero or absent means the default (120s). User prompts are never
	// subject to this deadline.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`

	Debug DebugConfig `yaml:"debug,omitempty"`
}

// DebugConfig controls the debug file logger.
type DebugConfig struct {
	// RetentionDays is how many days dated debug files are kept.
	// Zero disables cleanup.
	RetentionDays int `yaml:"retention_days,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		TimeoutSeconds: defaultTimeoutSeconds,
		Debug: DebugConfig{
			RetentionDays: 7,
		},
	}
}

// Load reads the config file at path, or ~/.vcadmin/config.yaml when path is
// empty, then applies environment overrides. A missing default file is fine
// (env or flags may carry everything); a missing explicit path is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = filepath.Join(Dir(), "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("VCADMIN_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("VCADMIN_USER"); v != "" {
		cfg.User = v
	}
	if v := os.Getenv("VCADMIN_INSECURE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Insecure = b
		}
	}
	if v := os.Getenv("VCADMIN_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutSeconds = n
		}
	}
}

// Validate checks that the fields required to reach vCenter are present.
func (c *Config) Validate() error {
	configPath := filepath.Join(Dir(), "config.yaml")
	if c.Host == "" {
		return fmt.Errorf("no vCenter host configured\n\nAdd it to %s:\n  host: \"vcenter.example.com\"\n\nor set VCADMIN_HOST", configPath)
	}
	if c.User == "" {
		return fmt.Errorf("no vCenter user configured\n\nAdd it to %s:\n  user: \"administrator@vsphere.local\"\n\nor set VCADMIN_USER", configPath)
	}
	return nil
}

// Timeout returns the per-operation deadline.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Dir returns the path to ~/.vcadmin.
func Dir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".vcadmin")
	}
	return filepath.Join(homeDir, ".vcadmin")
}
