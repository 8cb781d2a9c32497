// Package config persists the fmods configuration as a YAML file in the
// user config directory.
package config

import (
	"os"
	"path/filepath"

	"go.fmods.dev/fmods/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Store implements ports.ConfigStore on a single YAML file.
type Store struct {
	path string
}

// Option configures a Store.
type Option func(*Store)

// WithPath overrides the config file location. Used for testing.
func WithPath(path string) Option {
	return func(s *Store) { s.path = path }
}

// NewStore creates a config store. The default location is
// <user config dir>/fmods/config.yaml.
func NewStore(opts ...Option) (*Store, error) {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}

	if s.path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to locate user config dir")
		}
		s.path = filepath.Join(configDir, "fmods", "config.yaml")
	}

	return s, nil
}

// Load reads the stored configuration. A missing or unreadable file falls
// back to the defaults; the next Save replaces it.
func (s *Store) Load() (*domain.Config, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return domain.DefaultConfig(), nil
	}

	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.DefaultConfig(), nil
	}

	cfg := &domain.Config{
		Ask:             file.Ask,
		DefaultInstance: file.DefaultInstance,
		Instances:       file.Instances,
	}
	if cfg.Instances == nil {
		cfg.Instances = map[string]string{}
	}

	return cfg, nil
}

// Save writes the configuration, creating the config directory if needed.
func (s *Store) Save(cfg *domain.Config) error {
	file := configFile{
		Ask:             cfg.Ask,
		DefaultInstance: cfg.DefaultInstance,
		Instances:       cfg.Instances,
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return zerr.Wrap(err, "failed to marshal config")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return zerr.Wrap(err, "failed to create config directory")
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return zerr.Wrap(err, "failed to write config file")
	}

	return nil
}
