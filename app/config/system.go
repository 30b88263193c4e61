package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// CategoryConfig describes one student category (kids, youth, adult, ...).
type CategoryConfig struct {
	Value       string `yaml:"value" json:"value"`
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description" json:"description"`
	Order       int    `yaml:"order" json:"order"`
}

// BeltLevelConfig describes one belt rank.
type BeltLevelConfig struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
	Rank  int    `yaml:"rank" json:"rank"`
	Color string `yaml:"color" json:"color"`
}

// SystemConfig holds the school-level reference data used by validators.
// It is loaded once at startup and read-only afterwards.
type SystemConfig struct {
	Version    string            `yaml:"version" json:"version"`
	Categories []CategoryConfig  `yaml:"categories" json:"categories"`
	BeltLevels []BeltLevelConfig `yaml:"belt_levels" json:"belt_levels"`
}

// LoadSystemConfig reads and validates the YAML configuration file.
func LoadSystemConfig(path string) (*SystemConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read system config: %w", err)
	}

	var cfg SystemConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse system config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid system config: %w", err)
	}

	sort.Slice(cfg.Categories, func(i, j int) bool { return cfg.Categories[i].Order < cfg.Categories[j].Order })
	sort.Slice(cfg.BeltLevels, func(i, j int) bool { return cfg.BeltLevels[i].Rank < cfg.BeltLevels[j].Rank })
	return &cfg, nil
}

func (c *SystemConfig) validate() error {
	if c.Version == "" {
		return fmt.Errorf("missing version field")
	}
	if len(c.Categories) == 0 {
		return fmt.Errorf("missing or empty categories list")
	}
	if len(c.BeltLevels) == 0 {
		return fmt.Errorf("missing or empty belt_levels list")
	}

	seen := map[string]bool{}
	for i, cat := range c.Categories {
		if cat.Value == "" || cat.Label == "" {
			return fmt.Errorf("category at index %d missing value or label", i)
		}
		if seen[cat.Value] {
			return fmt.Errorf("duplicate category value %q", cat.Value)
		}
		seen[cat.Value] = true
	}

	seen = map[string]bool{}
	for i, belt := range c.BeltLevels {
		if belt.Value == "" || belt.Label == "" {
			return fmt.Errorf("belt level at index %d missing value or label", i)
		}
		if seen[belt.Value] {
			return fmt.Errorf("duplicate belt level value %q", belt.Value)
		}
		seen[belt.Value] = true
	}
	return nil
}

// IsValidCategory reports whether value is a configured student category.
func (c *SystemConfig) IsValidCategory(value string) bool {
	for _, cat := range c.Categories {
		if cat.Value == value {
			return true
		}
	}
	return false
}

// IsValidBeltLevel reports whether value is a configured belt level.
func (c *SystemConfig) IsValidBeltLevel(value string) bool {
	for _, belt := range c.BeltLevels {
		if belt.Value == value {
			return true
		}
	}
	return false
}

// CategoryValues returns just the category identifiers, in display order.
func (c *SystemConfig) CategoryValues() []string {
	values := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		values[i] = cat.Value
	}
	return values
}
