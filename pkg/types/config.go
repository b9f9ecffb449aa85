// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds configuration structures shared between the CLI
// and the conversion packages.
package types

// MathStyle selects the math delimiter dialect for cleaned Markdown.
type MathStyle string

const (
	// MathDefault emits display math on its own $$ lines and inline
	// math in single dollars.
	MathDefault MathStyle = "default"

	// MathGoogleDoc emits $...$ inline math with escaped underscores,
	// the form the Google Docs equation importer accepts.
	MathGoogleDoc MathStyle = "gdoc"

	// MathEquationTag wraps every math region in <equation> tags.
	MathEquationTag MathStyle = "equation"
)

// LatexConfig holds settings for Markdown to LaTeX conversion.
type LatexConfig struct {
	// IncludeReferences appends a References section built from the
	// document's links (default true).
	IncludeReferences bool `json:"include_references" yaml:"include_references"`
}

// CleanConfig holds settings for Markdown cleanup.
type CleanConfig struct {
	// IncludeReferences appends a References section built from the
	// document's links (default true).
	IncludeReferences bool `json:"include_references" yaml:"include_references"`

	// MathStyle selects the output math dialect: default, gdoc, or
	// equation.
	MathStyle MathStyle `json:"math_style" yaml:"math_style"`
}

// WatermarkConfig holds settings for watermark scanning.
type WatermarkConfig struct {
	// HistoryDB is the SQLite file scan results are recorded to. Empty
	// disables history.
	HistoryDB string `json:"history_db" yaml:"history_db"`

	// CollapseSpaces replaces runs of multiple spaces instead of
	// preserving them.
	CollapseSpaces bool `json:"collapse_spaces" yaml:"collapse_spaces"`
}

// ExperimentsConfig holds CLI-level defaults for experiment generation.
// Per-run settings live in the generation config file itself.
type ExperimentsConfig struct {
	// OutputDir overrides the config file's output directory.
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`

	// IDPrefix overrides the config file's identifier prefix.
	IDPrefix string `json:"id_prefix,omitempty" yaml:"id_prefix,omitempty"`
}

// Config aggregates all texkit settings, mirroring the layout of
// texkit.yaml.
type Config struct {
	Latex       LatexConfig       `json:"latex" yaml:"latex"`
	Clean       CleanConfig       `json:"clean" yaml:"clean"`
	Watermark   WatermarkConfig   `json:"watermark" yaml:"watermark"`
	Experiments ExperimentsConfig `json:"experiments" yaml:"experiments"`
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() Config {
	return Config{
		Latex: LatexConfig{IncludeReferences: true},
		Clean: CleanConfig{
			IncludeReferences: true,
			MathStyle:         MathDefault,
		},
	}
}
