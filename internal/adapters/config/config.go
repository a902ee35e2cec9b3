// Package config provides the configuration loader for stencil.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/stencil/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Env variable overrides. They take precedence over the config file.
const (
	EnvRepository = "STENCIL_REPOSITORY"
	EnvIgnoreFile = "STENCIL_IGNORE"
	EnvConfigFile = "STENCIL_CONFIG"
)

// Config holds the resolved settings the adapters run with.
type Config struct {
	// Repository is the object store location. One repository holds every
	// blueprint; each name is a branch.
	Repository string `yaml:"repository"`

	// IgnoreFile is the local ignore-rules file included in commits.
	IgnoreFile string `yaml:"ignore_file"`
}

// Load resolves configuration in order: defaults, optional YAML file,
// environment overrides.
func Load() (*Config, error) {
	cfg, err := defaults()
	if err != nil {
		return nil, err
	}

	path, err := configPath()
	if err != nil {
		return nil, err
	}
	if err := readFile(path, cfg); err != nil {
		return nil, err
	}

	if repo := os.Getenv(EnvRepository); repo != "" {
		cfg.Repository = repo
	}
	if ignore := os.Getenv(EnvIgnoreFile); ignore != "" {
		cfg.IgnoreFile = ignore
	}
	return cfg, nil
}

func defaults() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}
	return &Config{
		Repository: filepath.Join(home, ".local", "share", "stencil", "repo"),
		IgnoreFile: filepath.Join(home, ".stencilignore"),
	}, nil
}

func configPath() (string, error) {
	if path := os.Getenv(EnvConfigFile); path != "" {
		return path, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}
	return filepath.Join(dir, "stencil", "config.yaml"), nil
}

// readFile merges an optional YAML file into cfg. A missing file is normal.
func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	if file.Repository != "" {
		cfg.Repository = file.Repository
	}
	if file.IgnoreFile != "" {
		cfg.IgnoreFile = file.IgnoreFile
	}
	return nil
}
