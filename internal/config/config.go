// Package config reads and writes the dashboard's per-user settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/conciergeelvirad/ELVIRA-sub003/internal/crud"
)

// PathEnv overrides the config location.
const PathEnv = "ELVIRA_CONFIG"

// Config holds dashboard configuration stored at ~/.elvira/config.
type Config struct {
	BaseURL  string `yaml:"base_url,omitempty"`
	APIKey   string `yaml:"api_key"`
	HotelID  string `yaml:"hotel_id"`
	Username string `yaml:"username"`
	Theme    string `yaml:"theme"`
	VimKeys  bool   `yaml:"vim_keys"`
	// SyncMode is "refetch" (default) or "apply".
	SyncMode string `yaml:"sync_mode,omitempty"`
}

// Path returns the config file path.
func Path() string {
	if p := strings.TrimSpace(os.Getenv(PathEnv)); p != "" {
		return p
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".elvira", "config")
}

// Load reads, parses and validates the config file. The file must exist
// and be readable by its owner only.
func Load() (*Config, error) {
	path := Path()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config not found: %w", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every problem with c at once.
func (c *Config) Validate() error {
	var errs []error
	if c.APIKey == "" {
		errs = append(errs, errors.New("config missing api_key"))
	}
	if c.HotelID == "" {
		errs = append(errs, errors.New("config missing hotel_id"))
	}
	switch c.SyncMode {
	case "", "refetch", "apply":
	default:
		errs = append(errs, fmt.Errorf("config sync_mode %q (want refetch or apply)", c.SyncMode))
	}
	switch c.Theme {
	case "", "dark", "light":
	default:
		errs = append(errs, fmt.Errorf("config theme %q (want dark or light)", c.Theme))
	}
	return errors.Join(errs...)
}

// SyncPolicy maps sync_mode onto the store's policy.
func (c *Config) SyncPolicy() crud.SyncPolicy {
	if c.SyncMode == "apply" {
		return crud.SyncApply
	}
	return crud.SyncRefetch
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	return os.Chmod(path, 0600)
}
