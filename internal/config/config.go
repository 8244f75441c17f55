// Package config loads the optional checker configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ossrfc/ossrfc/internal/analysis"
)

// Config holds the persistent checker settings. Command line flags are
// appended to the values found here.
type Config struct {
	// Checks that are never run.
	Disable []string `yaml:"disable"`
	// Flags whose findings are recorded but marked as ignored.
	Ignore []string `yaml:"ignore"`
	// GitHub token. The GITHUB_TOKEN environment variable and the
	// --token flag take precedence.
	Token string `yaml:"token"`
}

// Load reads and validates a yaml config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// ResolveToken picks the GitHub token to use: an explicit flag value
// wins, then the GITHUB_TOKEN environment variable, then the config
// file entry. An empty result means anonymous access.
func (c *Config) ResolveToken(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("GITHUB_TOKEN"); env != "" {
		return env
	}
	return c.Token
}

// Validate rejects unknown check and ignore ids. This runs at startup
// so a typo never silently enables a check the user meant to disable.
func (c *Config) Validate() error {
	for _, id := range c.Disable {
		if !analysis.ValidCheck(id) {
			return fmt.Errorf("unknown check id %q (valid: %v)", id, analysis.Checks)
		}
	}
	for _, id := range c.Ignore {
		if !analysis.ValidFlag(id) {
			return fmt.Errorf("unknown ignore id %q (valid: %v)", id, analysis.Flags)
		}
	}
	return nil
}
