// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// ConfigFileName is the configuration file name within the config directory.
const ConfigFileName = "config.toml"

// fileConfig is the TOML shape of the configuration file.
type fileConfig struct {
	API struct {
		BaseURL        string `toml:"base_url"`
		GoogleClientID string `toml:"google_client_id"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
	} `toml:"api"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

// Loader loads configuration from a TOML file with environment overrides.
type Loader struct {
	confDir string // Config directory (e.g. ~/.config/taskdeck)
}

// NewLoader creates a Loader using the default config directory.
func NewLoader() *Loader {
	return &Loader{confDir: defaultConfigDir()}
}

// NewLoaderWithDir creates a Loader with a custom config directory.
// This is useful for testing.
func NewLoaderWithDir(confDir string) *Loader {
	return &Loader{confDir: confDir}
}

// defaultConfigDir returns the default config directory.
func defaultConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "taskdeck")
}

// Load returns the configuration: defaults, overridden by the config file
// when present, overridden by TASKDECK_* environment variables.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	if l.confDir != "" {
		path := filepath.Join(l.confDir, ConfigFileName)
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// No file, defaults apply
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			var fc fileConfig
			if err := toml.Unmarshal(data, &fc); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
			applyFile(cfg, fc)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyFile(cfg *domain.Config, fc fileConfig) {
	if fc.API.BaseURL != "" {
		cfg.API.BaseURL = trimTrailingSlash(fc.API.BaseURL)
	}
	if fc.API.GoogleClientID != "" {
		cfg.API.GoogleClientID = fc.API.GoogleClientID
	}
	if fc.API.TimeoutSeconds > 0 {
		cfg.API.TimeoutSeconds = fc.API.TimeoutSeconds
	}
	if fc.Log.Level != "" {
		cfg.Log.Level = fc.Log.Level
	}
}

func applyEnv(cfg *domain.Config) {
	if v := os.Getenv("TASKDECK_API_URL"); v != "" {
		cfg.API.BaseURL = trimTrailingSlash(v)
	}
	if v := os.Getenv("TASKDECK_GOOGLE_CLIENT_ID"); v != "" {
		cfg.API.GoogleClientID = v
	}
	if v := os.Getenv("TASKDECK_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.API.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("TASKDECK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
