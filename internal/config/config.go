// Package config manages the mockup engine's tunables.
package config

import (
	"fmt"

	"github.com/ironsheep/shirt-mockup-mcp/internal/batch"
	"github.com/ironsheep/shirt-mockup-mcp/internal/detection"
	"github.com/ironsheep/shirt-mockup-mcp/internal/placement"
)

// Config represents the application configuration.
type Config struct {
	Placement placement.Profiles `yaml:"placement"`
	Detection detection.Options  `yaml:"detection"`
	Render    RenderConfig       `yaml:"render"`
	Batch     BatchConfig        `yaml:"batch"`
}

// RenderConfig contains compositing options.
type RenderConfig struct {
	// Filter is the resampling filter name: nearest, box, linear,
	// catmullrom (bicubic), or lanczos.
	Filter string `yaml:"filter"`
}

// BatchConfig contains batch generation options.
type BatchConfig struct {
	Workers int    `yaml:"workers"` // 0 = one per CPU
	Layout  string `yaml:"layout"`  // flat or folder
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Placement: placement.DefaultProfiles(),
		Detection: detection.DefaultOptions(),
		Render: RenderConfig{
			Filter: "catmullrom",
		},
		Batch: BatchConfig{
			Workers: 0,
			Layout:  "folder",
		},
	}
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	if err := c.Placement.Validate(); err != nil {
		return fmt.Errorf("placement.%w", err)
	}
	if err := c.Detection.Validate(); err != nil {
		return fmt.Errorf("detection.%w", err)
	}
	if _, err := placement.FilterByName(c.Render.Filter); err != nil {
		return fmt.Errorf("render.filter: %w", err)
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers %d must not be negative", c.Batch.Workers)
	}
	if _, err := batch.ParseLayout(c.Batch.Layout); err != nil {
		return fmt.Errorf("batch.layout: %w", err)
	}
	return nil
}

// Runner builds a batch runner from the configuration. The configuration
// must have passed Validate.
func (c *Config) Runner(outDir string) (*batch.Runner, error) {
	layout, err := batch.ParseLayout(c.Batch.Layout)
	if err != nil {
		return nil, err
	}
	return &batch.Runner{
		Profiles: c.Placement,
		Detect:   c.Detection,
		Filter:   c.Render.Filter,
		Workers:  c.Batch.Workers,
		Layout:   layout,
		OutDir:   outDir,
	}, nil
}
