// Package config holds the application configuration, assembled from
// defaults, an optional YAML file, and command line flags in that order.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

// AppName is the product name shown in the window title and the info endpoint
const AppName = "MedScreen"

// Config holds the application configuration
type Config struct {
	Host      string `yaml:"host" validate:"required"`
	Port      int    `yaml:"port" validate:"min=0,max=65535"`
	ModelsDir string `yaml:"models_dir" validate:"required"`
	Headless  bool   `yaml:"headless"`
	Version   string `yaml:"-"`
}

// Default returns the configuration used before any file or flag overrides.
// Port 0 means pick a free port at startup.
func Default() Config {
	return Config{
		Host:      "127.0.0.1",
		Port:      0,
		ModelsDir: "models",
	}
}

// Load reads a YAML file over the defaults and validates the result
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration against its constraints
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
