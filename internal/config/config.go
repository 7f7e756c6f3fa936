// Package config handles loading and validation of hbaprobe configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration structure.
type Config struct {
	Clusters ClustersConfig `yaml:"clusters"`
	Lint     LintConfig     `yaml:"lint"`
}

// ClustersConfig defines where clusters live and which ones may be queried.
type ClustersConfig struct {
	Root  string   `yaml:"root"`  // <root>/<version>/<name>/pg_hba.conf
	Allow []string `yaml:"allow"` // Cluster-id glob patterns
}

// LintConfig defines the wide-network thresholds for the lint command.
type LintConfig struct {
	WideIPv4Prefix int `yaml:"wide_ipv4_prefix"`
	WideIPv6Prefix int `yaml:"wide_ipv6_prefix"`
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".hbaprobe", "config.yaml"), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Clusters: ClustersConfig{
			Root:  "/etc/postgresql",
			Allow: []string{"*/*"},
		},
		Lint: LintConfig{
			WideIPv4Prefix: 16,
			WideIPv6Prefix: 48,
		},
	}
}

// Load reads and parses the config file. An empty path means the default
// location, and a missing file there falls back to built-in defaults; an
// explicitly named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	// Unmarshal over the defaults so omitted keys keep their built-in values.
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Clusters.Root == "" {
		return fmt.Errorf("clusters.root cannot be empty")
	}
	if len(c.Clusters.Allow) == 0 {
		return fmt.Errorf("clusters.allow cannot be empty")
	}
	if c.Lint.WideIPv4Prefix < 0 || c.Lint.WideIPv4Prefix > 32 {
		return fmt.Errorf("lint.wide_ipv4_prefix must be between 0 and 32")
	}
	if c.Lint.WideIPv6Prefix < 0 || c.Lint.WideIPv6Prefix > 128 {
		return fmt.Errorf("lint.wide_ipv6_prefix must be between 0 and 128")
	}
	return nil
}
