package config

import (
	"fmt"
	"os"
	"path/filepath"

	"housingdash/internal/fieldspec"
	"housingdash/internal/funding"
	"housingdash/internal/geometry"
	"housingdash/internal/records"
	"housingdash/internal/render"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for configuration when --config is not
// given.
const DefaultPath = "housingdash.yaml"

// Config holds all housingdash configuration.
type Config struct {
	// Input data file
	Input InputConfig `yaml:"input"`

	// Field specification (column name -> type)
	Fields FieldsConfig `yaml:"fields"`

	// Dataset field names the aggregator reads
	Columns ColumnsConfig `yaml:"columns"`

	// Chart canvas and file output
	Charts ChartsConfig `yaml:"charts"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Terminal dashboard
	UI UIConfig `yaml:"ui"`
}

// InputConfig locates the funding data.
type InputConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // auto, csv, tsv, xlsx, json
	Sheet  string `yaml:"sheet"`  // xlsx only; empty = first sheet
}

// FieldsConfig locates the field specification. An empty path uses the
// built-in City/Funding/Homes spec.
type FieldsConfig struct {
	Path string `yaml:"path"`
}

// ColumnsConfig names the City, Funding and Homes fields.
type ColumnsConfig struct {
	City    string `yaml:"city"`
	Funding string `yaml:"funding"`
	Homes   string `yaml:"homes"`
}

// ChartsConfig sizes the chart canvas and configures exported files.
type ChartsConfig struct {
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	Padding      int    `yaml:"padding"`
	LabelPadding int    `yaml:"label_padding"`
	BarGap       int    `yaml:"bar_gap"`
	GridLines    int    `yaml:"grid_lines"`
	Format       string `yaml:"format"` // png, svg
	OutDir       string `yaml:"out_dir"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	geo := geometry.DefaultOptions()
	cols := funding.DefaultColumns()
	return &Config{
		Input: InputConfig{
			Path:   "data/funding.csv",
			Format: "auto",
		},
		Fields: FieldsConfig{
			Path: "configFiles/FundingConfig.json",
		},
		Columns: ColumnsConfig{
			City:    cols.City,
			Funding: cols.Funding,
			Homes:   cols.Homes,
		},
		Charts: ChartsConfig{
			Width:        geo.Width,
			Height:       geo.Height,
			Padding:      geo.Padding,
			LabelPadding: geo.LabelPadding,
			BarGap:       geo.BarGap,
			GridLines:    geo.GridLines,
			Format:       "png",
			OutDir:       "charts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		UI: *DefaultUIConfig(),
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Environment variables that override file settings.
const (
	EnvInput    = "HOUSINGDASH_INPUT"
	EnvFields   = "HOUSINGDASH_FIELDS"
	EnvLogLevel = "HOUSINGDASH_LOG_LEVEL"
	EnvTheme    = "HOUSINGDASH_THEME"
)

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv(EnvInput); path != "" {
		c.Input.Path = path
	}
	if path := os.Getenv(EnvFields); path != "" {
		c.Fields.Path = path
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
	if theme := os.Getenv(EnvTheme); theme != "" {
		c.UI.Theme = theme
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return fmt.Errorf("input path not configured (set input.path, --input or %s)", EnvInput)
	}
	if _, err := records.ParseFormat(c.Input.Format); err != nil {
		return fmt.Errorf("input.format: %w", err)
	}
	if c.Columns.City == "" || c.Columns.Funding == "" {
		return fmt.Errorf("columns.city and columns.funding must be set")
	}
	if _, err := render.ParseFormat(c.Charts.Format); err != nil {
		return fmt.Errorf("charts.format: %w", err)
	}
	if _, err := c.Geometry().Plot(); err != nil {
		return fmt.Errorf("charts: %w", err)
	}
	if c.Charts.BarGap < 0 || c.Charts.GridLines < 0 {
		return fmt.Errorf("charts.bar_gap and charts.grid_lines must not be negative")
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if _, err := funding.ParseSortOrder(c.UI.Sort); err != nil {
		return fmt.Errorf("ui.sort: %w", err)
	}
	return c.UI.Validate()
}

// SortOrder returns the initial city list order.
func (c *Config) SortOrder() funding.SortOrder {
	o, err := funding.ParseSortOrder(c.UI.Sort)
	if err != nil {
		return funding.SortDefault
	}
	return o
}

// RecordOptions returns parser options for the input file.
func (c *Config) RecordOptions() records.Options {
	format, err := records.ParseFormat(c.Input.Format)
	if err != nil {
		format = records.FormatAuto
	}
	return records.Options{Format: format, Sheet: c.Input.Sheet}
}

// FieldSpec loads the configured field spec, or the built-in default when no
// path is set.
func (c *Config) FieldSpec() (fieldspec.Spec, error) {
	if c.Fields.Path == "" {
		return fieldspec.Default(), nil
	}
	return fieldspec.LoadFile(c.Fields.Path)
}

// FundingColumns returns the aggregator column names.
func (c *Config) FundingColumns() funding.Columns {
	return funding.Columns{City: c.Columns.City, Funding: c.Columns.Funding, Homes: c.Columns.Homes}
}

// Geometry returns chart geometry options.
func (c *Config) Geometry() geometry.Options {
	return geometry.Options{
		Width:        c.Charts.Width,
		Height:       c.Charts.Height,
		Padding:      c.Charts.Padding,
		LabelPadding: c.Charts.LabelPadding,
		BarGap:       c.Charts.BarGap,
		GridLines:    c.Charts.GridLines,
	}
}

// RenderFormat returns the chart file format, defaulting to PNG.
func (c *Config) RenderFormat() render.Format {
	f, err := render.ParseFormat(c.Charts.Format)
	if err != nil {
		return render.PNG
	}
	return f
}
