// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	// Properties are added to every exported feature.
	Properties map[string]any `yaml:"properties,omitempty"`

	DefaultName string `yaml:"default_name,omitempty" validate:"omitempty,max=128"`
	TableMode   string `yaml:"table_mode,omitempty" validate:"omitempty,oneof=points ring"`
	MaxUploadMB int64  `yaml:"max_upload_mb,omitempty" validate:"gte=0,lte=512"`
	Compact     bool   `yaml:"compact,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		DefaultName: "my_area",
		TableMode:   "points",
		MaxUploadMB: 10,
	}
}

// Load reads and parses the YAML configuration file from the specified path.
// Unset fields keep their defaults. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, err)
	}

	if cfg.MaxUploadMB == 0 {
		cfg.MaxUploadMB = Default().MaxUploadMB
	}

	return cfg, nil
}

// MaxUploadBytes is the upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
