// Package config holds the interpreter's runtime settings.
package config

import (
	"fmt"
	"os"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Config is loaded from an optional YAML file and then overridden by flags
type Config struct {
	LineWidth  int   `yaml:"line_width"`  // 0 = terminal width
	FieldWidth int   `yaml:"field_width"`
	Verbose    int   `yaml:"verbose"`
	MaxDepth   int   `yaml:"max_depth"` // resume stack capacity
	Seed       int64 `yaml:"seed"`      // RAND source
}

const (
	DefaultLineWidth  = 80
	DefaultFieldWidth = 20
	DefaultMaxDepth   = 100
)

// Default returns the built-in settings
func Default() Config {
	return Config{
		LineWidth:  DefaultLineWidth,
		FieldWidth: DefaultFieldWidth,
		MaxDepth:   DefaultMaxDepth,
		Seed:       1,
	}
}

// Parse overlays YAML settings on the defaults
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Load reads a YAML config file
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

// ResolveLineWidth replaces an automatic line width with the width of the
// terminal on fd, or the default when fd is not a terminal
func (c *Config) ResolveLineWidth(fd int) {
	if c.LineWidth != 0 {
		return
	}
	c.LineWidth = DefaultLineWidth
	if term.IsTerminal(fd) {
		if width, _, err := term.GetSize(fd); err == nil && width > 0 {
			c.LineWidth = width
		}
	}
}

// Validate rejects settings the formatter and evaluator cannot honour
func (c Config) Validate() error {
	if c.FieldWidth < 4 {
		return fmt.Errorf("config: field width %d is below the minimum of 4", c.FieldWidth)
	}
	if c.LineWidth != 0 && c.LineWidth < c.FieldWidth {
		return fmt.Errorf("config: line width %d is narrower than field width %d", c.LineWidth, c.FieldWidth)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("config: max depth must be at least 1")
	}
	if c.Verbose < 0 {
		return fmt.Errorf("config: verbosity cannot be negative")
	}
	return nil
}
