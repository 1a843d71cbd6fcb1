// Package pglens holds the project-level configuration and shared
// errors of the pglens toolkit. The analysis core (syntax, tokenizer,
// parser, ast, binder, resolve, ide) takes no configuration; only the
// lint CLI reads pglens.yaml.
package pglens

import (
	"fmt"
	"os"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/pglens/pglens/lint"
)

// Config represents the pglens.yaml configuration.
type Config struct {
	Rules   RulesConfig `yaml:"rules"`
	Include []string    `yaml:"include"`
	Exclude []string    `yaml:"exclude"`
	Color   string      `yaml:"color"` // auto, always, never
}

// RulesConfig selects which lint rules run.
type RulesConfig struct {
	Enabled  []string `yaml:"enabled"`
	Disabled []string `yaml:"disabled"`
}

// DefaultConfig returns the configuration used when no pglens.yaml
// exists: every rule on, all .sql files in.
func DefaultConfig() *Config {
	return &Config{
		Include: []string{"**/*.sql"},
		Color:   "auto",
	}
}

// LoadConfig loads configuration from the specified file. A missing
// file yields the defaults. Environment variables from a .env file
// next to the process are loaded first, best effort.
func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks rule names and enum fields.
func (c *Config) Validate() error {
	known := lint.RuleNames()
	for _, name := range append(append([]string{}, c.Rules.Enabled...), c.Rules.Disabled...) {
		if !slices.Contains(known, name) {
			return fmt.Errorf("%w: %q", ErrUnknownRule, name)
		}
	}
	switch c.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("%w: color must be auto, always, or never", ErrConfigValidation)
	}
	return nil
}

// EffectiveRules resolves the enabled/disabled lists into the final
// rule-name set. An empty enabled list means all rules.
func (c *Config) EffectiveRules() []string {
	names := c.Rules.Enabled
	if len(names) == 0 {
		names = lint.RuleNames()
	}
	var out []string
	for _, n := range names {
		if !slices.Contains(c.Rules.Disabled, n) {
			out = append(out, n)
		}
	}
	return out
}
