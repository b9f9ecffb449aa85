// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package experiments generates batches of job scripts from a template
// and a configuration of parameter values. Parameters come from a grid
// search, a list of predefined configurations, or both; each combination
// produces one output file plus an execution script that runs them all.
package experiments

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// DefaultDelimiter wraps string parameter values in generated output.
const DefaultDelimiter = `"`

// Config describes one generation run. Configurations load from YAML or
// JSON files; the delimiter is a pointer so an explicit empty string
// (no delimiter) is distinguishable from an absent key.
type Config struct {
	OutputDir       string           `json:"output_dir" yaml:"output_dir"`
	OutputPrefix    string           `json:"output_prefix" yaml:"output_prefix"`
	FileExtension   string           `json:"file_extension" yaml:"file_extension"`
	StringDelimiter *string          `json:"string_delimiter" yaml:"string_delimiter"`
	IDPrefix        string           `json:"id" yaml:"id"`
	Replacements    map[string]any   `json:"replacements" yaml:"replacements"`
	GridSearch      map[string][]any `json:"grid_search" yaml:"grid_search"`
	Predefined      []map[string]any `json:"predefined_configs" yaml:"predefined_configs"`
}

// LoadConfig reads and validates a configuration file. The format is
// chosen by extension: .yaml and .yml parse as YAML, everything else as
// JSON.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing YAML config %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing JSON config %s: %w", path, err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = "experiments"
	}
	if c.OutputPrefix == "" {
		c.OutputPrefix = "exp"
	}
	if c.Replacements == nil {
		c.Replacements = map[string]any{}
	}
	if c.GridSearch == nil {
		c.GridSearch = map[string][]any{}
	}
}

// Validate checks the structural rules: every grid parameter needs at
// least one value, and at least one generation method must be present.
func (c *Config) Validate() error {
	for key, values := range c.GridSearch {
		if len(values) == 0 {
			return fmt.Errorf("grid search parameter %q cannot be empty", key)
		}
	}
	if len(c.GridSearch) == 0 && len(c.Predefined) == 0 {
		return fmt.Errorf("config must specify grid_search or predefined_configs")
	}
	return nil
}

// Delimiter returns the configured string delimiter, defaulting to a
// double quote.
func (c *Config) Delimiter() string {
	if c.StringDelimiter == nil {
		return DefaultDelimiter
	}
	return *c.StringDelimiter
}

// Extension returns the output file extension, falling back to the
// template's own extension. A missing leading dot is added.
func (c *Config) Extension(templatePath string) string {
	ext := c.FileExtension
	if ext == "" {
		return filepath.Ext(templatePath)
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
