// Package config defines the configuration types for mdtree. These are
// pure data structures; loading and discovery live alongside in this
// package, keyed off YAML files and environment overrides.
package config

import (
	"fmt"

	"github.com/yaklabco/mdtree/pkg/feature"
)

// OutputFormat specifies how a parsed tree is rendered.
type OutputFormat string

const (
	FormatTree     OutputFormat = "tree"
	FormatJSON     OutputFormat = "json"
	FormatMarkdown OutputFormat = "markdown"
)

// IsValid returns true if the output format is one we render.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatTree, FormatJSON, FormatMarkdown:
		return true
	default:
		return false
	}
}

// FeaturesConfig selects which markdown constructs the parser honors.
// An empty Enable list means everything; Disable subtracts from that.
type FeaturesConfig struct {
	Enable  []string `yaml:"enable"`
	Disable []string `yaml:"disable"`
}

// ParseConfig holds parsing behavior toggles.
type ParseConfig struct {
	// InferLanguages runs language detection on fenced code blocks
	// that have no info string.
	InferLanguages bool `yaml:"infer_languages"`
}

// Config is the root configuration structure for mdtree.
type Config struct {
	Features FeaturesConfig `yaml:"features"`
	Parse    ParseConfig    `yaml:"parse"`

	// Ignore contains glob patterns for files to skip during
	// directory walks.
	Ignore []string `yaml:"ignore"`

	// CLI-level options, not persisted to config files.

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers. Zero means one
	// per CPU.
	Jobs int `yaml:"-"`
}

// NewConfig returns a Config with defaults: every feature enabled, no
// language inference, tree output.
func NewConfig() *Config {
	return &Config{
		Format: FormatTree,
	}
}

// FeatureSet builds the parser feature set from the enable and disable
// lists. Unknown tags in either list fail immediately.
func (c *Config) FeatureSet() (feature.Set, error) {
	set := feature.AllEnabled()

	if len(c.Features.Enable) > 0 {
		enable := make([]feature.Feature, len(c.Features.Enable))
		for i, tag := range c.Features.Enable {
			enable[i] = feature.Feature(tag)
		}
		var err error
		set, err = feature.NewSet(enable...)
		if err != nil {
			return feature.Set{}, err
		}
	}

	disable := make([]feature.Feature, 0, len(c.Features.Disable))
	for _, tag := range c.Features.Disable {
		f := feature.Feature(tag)
		if !feature.IsKnown(f) {
			return feature.Set{}, fmt.Errorf("unrecognized feature tag %q", tag)
		}
		disable = append(disable, f)
	}

	return set.Without(disable...), nil
}

// Validate checks the configuration for errors a parse would otherwise
// hit later.
func (c *Config) Validate() error {
	if c.Format != "" && !c.Format.IsValid() {
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must be non-negative, got %d", c.Jobs)
	}
	_, err := c.FeatureSet()
	return err
}
