// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Default locations used when no configuration overrides them. They follow
// the site layout: reference data under docs/_data, rendered fragments under
// _includes/publications.
const (
	DefaultInputDir  = "docs/_data"
	DefaultOutputDir = "_includes/publications"
	DefaultPattern   = "*_refs.json"
)

// ConverterConfig holds settings for a reference conversion run.
type ConverterConfig struct {
	// InputDir is the directory scanned for reference JSON files.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir is the directory that receives the rendered HTML fragments.
	// It must already exist.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Pattern is the filename glob for input files (default "*_refs.json").
	Pattern string `json:"pattern" yaml:"pattern"`
}

// WithDefaults returns a copy of c with empty fields set to their defaults.
func (c ConverterConfig) WithDefaults() ConverterConfig {
	if c.InputDir == "" {
		c.InputDir = DefaultInputDir
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.Pattern == "" {
		c.Pattern = DefaultPattern
	}
	return c
}
