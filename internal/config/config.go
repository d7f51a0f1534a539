// Package config loads server configuration from a yaml file plus
// environment overrides. The dataset path is the only required value;
// the core loader itself never reads the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvDatasetPath overrides dataset.path when set. The variable name is
// the one the upstream ChEMBL tooling has always used.
const EnvDatasetPath = "CHRLDB_CHEMBL_TXTFILE"

// ErrDatasetPathNotSet means neither the config file nor the
// environment provided a compound dump path.
var ErrDatasetPathNotSet = errors.New("dataset path not set: provide dataset.path or " + EnvDatasetPath)

// Config holds all server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Dataset DatasetConfig `yaml:"dataset"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DatasetConfig points at the compound dump.
type DatasetConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"` // reload when the file changes on disk
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Port: 8080},
		Dataset: DatasetConfig{Watch: true},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the yaml file at path (a missing file is fine, defaults
// apply), applies environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Defaults plus environment only.
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv(EnvDatasetPath); v != "" {
		cfg.Dataset.Path = v
	}
	if cfg.Dataset.Path == "" {
		return nil, ErrDatasetPathNotSet
	}
	return cfg, nil
}
