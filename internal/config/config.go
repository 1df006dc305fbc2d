// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for zkid.
//
// Configuration is TOML with sensible defaults and environment variable
// overrides. File location: ~/.zkid/config.toml.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete zkid configuration.
type Config struct {
	// Version of the config schema, written on save.
	Version string `toml:"version"`

	// API holds remote service connection settings.
	API APIConfig `toml:"api"`

	// UI holds terminal UI settings.
	UI UIConfig `toml:"ui"`

	// Storage holds local persistence settings.
	Storage StorageConfig `toml:"storage"`
}

// APIConfig contains remote privacy-identity service settings.
type APIConfig struct {
	// BaseURL is the service root, e.g. "https://api.zkid.example/api".
	BaseURL string `toml:"base_url"`

	// TimeoutSecs is the per-request timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs"`

	// Debug enables request/response logging (no credentials are logged).
	Debug bool `toml:"debug"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// ReducedMotion disables spinners and progress animation.
	ReducedMotion bool `toml:"reduced_motion"`

	// PageSize is the number of proofs requested per page.
	PageSize int `toml:"page_size"`
}

// StorageConfig contains local persistence settings.
type StorageConfig struct {
	// Dir overrides the default data directory (~/.zkid).
	Dir string `toml:"dir"`

	// CacheProofs enables the local SQLite proof cache.
	CacheProofs bool `toml:"cache_proofs"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultBaseURL is the service endpoint used when nothing is configured.
const DefaultBaseURL = "http://localhost:5000/api"

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		API: APIConfig{
			BaseURL:     DefaultBaseURL,
			TimeoutSecs: 30,
		},
		UI: UIConfig{
			PageSize: 10,
		},
		Storage: StorageConfig{
			CacheProofs: true,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// DataDir returns the zkid data directory, honoring the Storage.Dir override.
func (c *Config) DataDir() string {
	if c.Storage.Dir != "" {
		return c.Storage.Dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zkid"
	}
	return filepath.Join(home, ".zkid")
}

// DefaultPath returns the default config file path (~/.zkid/config.toml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".zkid", "config.toml")
	}
	return filepath.Join(home, ".zkid", "config.toml")
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads configuration from the given path, falling back to defaults
// for any missing file or field, then applies environment overrides and
// validates. A missing config file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Defaults apply.
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv applies environment variable overrides.
// ZKID_API_URL takes precedence over the config file; it exists so test and
// staging environments can be targeted without editing the file.
func (c *Config) applyEnv() {
	if v := os.Getenv("ZKID_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if os.Getenv("ZKID_DEBUG") == "1" {
		c.API.Debug = true
	}
	if v := os.Getenv("ZKID_DATA_DIR"); v != "" {
		c.Storage.Dir = v
	}
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api.base_url %q", c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url must be http or https, got %q", u.Scheme)
	}
	if c.API.TimeoutSecs <= 0 {
		c.API.TimeoutSecs = 30
	}
	if c.UI.PageSize <= 0 || c.UI.PageSize > 100 {
		c.UI.PageSize = 10
	}
	c.API.BaseURL = strings.TrimSuffix(c.API.BaseURL, "/")
	return nil
}

// Timeout returns the request timeout as a duration.
func (c *APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to the given path in TOML format.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

var (
	globalMu  sync.RWMutex
	globalCfg *Config
)

// Global returns the process-wide configuration, loading it on first use.
func Global() *Config {
	globalMu.RLock()
	if globalCfg != nil {
		defer globalMu.RUnlock()
		return globalCfg
	}
	globalMu.RUnlock()

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalCfg == nil {
		cfg, err := Load(DefaultPath())
		if err != nil {
			cfg = Default()
		}
		globalCfg = cfg
	}
	return globalCfg
}

// SetGlobal replaces the process-wide configuration.
// Used by the watcher on hot reload and by tests.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalCfg = cfg
}
