// Package config handles build tool configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/Faultbox/spicy/pkg/landscape"
)

// Config holds all tool settings.
type Config struct {
	Project   ProjectConfig   `yaml:"project"`
	Converter ConverterConfig `yaml:"converter"`
	Landscape LandscapeConfig `yaml:"landscape"`
	Publish   PublishConfig   `yaml:"publish"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ProjectConfig holds the workspace location and "new" command defaults.
type ProjectConfig struct {
	Root         string `yaml:"root"`          // Directory containing common/
	Author       string `yaml:"author"`        // Header author for new projects
	Description  string `yaml:"description"`   // Header description for new projects
	SampleRadius int    `yaml:"sample_radius"` // Sample landscape radius in cells, 0 = none
	SampleSeed   int64  `yaml:"sample_seed"`
}

// ConverterConfig holds tes3conv settings.
type ConverterConfig struct {
	Path    string        `yaml:"path"` // Empty = common/tes3conv/<os>/tes3conv
	Timeout time.Duration `yaml:"timeout"`
}

// LandscapeConfig holds elevation consolidation settings.
type LandscapeConfig struct {
	landscape.Units `yaml:",inline"`

	EdgePolicy    string  `yaml:"edge_policy"`    // overwrite, warn or strict
	EdgeTolerance float64 `yaml:"edge_tolerance"` // Canonical units
}

// PublishConfig holds S3 upload settings for built packages.
type PublishConfig struct {
	Bucket       string `yaml:"bucket"`
	Region       string `yaml:"region"`
	Prefix       string `yaml:"prefix"`
	CacheSeconds int    `yaml:"cache_seconds"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Project: ProjectConfig{
			Root:        ".",
			Author:      "Author",
			Description: "Data",
			SampleSeed:  1,
		},
		Converter: ConverterConfig{
			Timeout: 5 * time.Minute,
		},
		Landscape: LandscapeConfig{
			Units:         landscape.DefaultUnits(),
			EdgePolicy:    landscape.EdgeOverwrite.String(),
			EdgeTolerance: 0.01,
		},
		Publish: PublishConfig{
			Region:       "us-east-1",
			CacheSeconds: 300,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks settings that cannot be fixed up by defaults.
func (c *Config) Validate() error {
	if _, err := c.Landscape.Reconciler(); err != nil {
		return fmt.Errorf("landscape: %w", err)
	}
	if c.Converter.Timeout < 0 {
		return fmt.Errorf("converter: negative timeout %v", c.Converter.Timeout)
	}
	return nil
}

// Reconciler builds the elevation reconciler described by the settings.
func (l LandscapeConfig) Reconciler() (*landscape.Reconciler, error) {
	if err := l.Units.Validate(); err != nil {
		return nil, err
	}
	policy, err := landscape.ParseEdgePolicy(l.EdgePolicy)
	if err != nil {
		return nil, err
	}
	return &landscape.Reconciler{
		Units:     l.Units,
		Policy:    policy,
		Tolerance: l.EdgeTolerance,
	}, nil
}
