// Package models defines the shared record types of the readiness core.
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BrandConfig lists the name and domain variants a sweep matches against.
type BrandConfig struct {
	Names   []string `yaml:"names"`
	Domains []string `yaml:"domains"`
}

// Config holds runtime configuration loaded from YAML. CLI flags override
// individual fields.
type Config struct {
	URLs        []string    `yaml:"urls"`
	WorkerCount int         `yaml:"workers"`
	Brand       BrandConfig `yaml:"brand"`
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
