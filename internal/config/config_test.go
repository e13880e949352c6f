package config

import (
	"os"
	"path/filepath"
	"testing"

	"housingdash/internal/fieldspec"
	"housingdash/internal/funding"
	"housingdash/internal/geometry"
	"housingdash/internal/records"
	"housingdash/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvInput, EnvFields, EnvLogLevel, EnvTheme} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "data/funding.csv", cfg.Input.Path)
	assert.Equal(t, geometry.DefaultOptions(), cfg.Geometry())
	assert.Equal(t, funding.DefaultColumns(), cfg.FundingColumns())
	assert.Equal(t, render.PNG, cfg.RenderFormat())
	assert.Equal(t, funding.SortDefault, cfg.SortOrder())
	assert.Equal(t, "auto", cfg.UI.Theme)
}

func TestConfig_LoadMissingReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "housingdash.yaml")

	cfg := DefaultConfig()
	cfg.Input.Path = "cities.xlsx"
	cfg.Input.Format = "xlsx"
	cfg.Charts.Format = "svg"
	cfg.UI.Sort = "funding"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, records.FormatXLSX, loaded.RecordOptions().Format)
	assert.Equal(t, render.SVG, loaded.RenderFormat())
	assert.Equal(t, funding.SortByFunding, loaded.SortOrder())
}

func TestConfig_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "housingdash.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input:\n  path: other.csv\ncharts:\n  width: 800\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "other.csv", cfg.Input.Path)
	assert.Equal(t, 800, cfg.Charts.Width)
	assert.Equal(t, 500, cfg.Charts.Height)
	assert.Equal(t, "City", cfg.Columns.City)
}

func TestConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "housingdash.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: [unclosed"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvInput, "env.csv")
	t.Setenv(EnvFields, "env.json")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvTheme, "light")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env.csv", cfg.Input.Path)
	assert.Equal(t, "env.json", cfg.Fields.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "light", cfg.UI.Theme)
}

func TestConfig_Validate(t *testing.T) {
	cases := map[string]func(*Config){
		"no input":      func(c *Config) { c.Input.Path = "" },
		"input format":  func(c *Config) { c.Input.Format = "parquet" },
		"no city":       func(c *Config) { c.Columns.City = "" },
		"chart format":  func(c *Config) { c.Charts.Format = "gif" },
		"tiny canvas":   func(c *Config) { c.Charts.Width = 100 },
		"negative gap":  func(c *Config) { c.Charts.BarGap = -1 },
		"log level":     func(c *Config) { c.Logging.Level = "trace" },
		"log format":    func(c *Config) { c.Logging.Format = "xml" },
		"theme":         func(c *Config) { c.UI.Theme = "neon" },
		"sort":          func(c *Config) { c.UI.Sort = "population" },
		"sidebar width": func(c *Config) { c.UI.SidebarWidth = -2 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfig_FieldSpec(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fields.Path = ""
	spec, err := cfg.FieldSpec()
	require.NoError(t, err)
	assert.Equal(t, fieldspec.Default(), spec)

	path := filepath.Join(t.TempDir(), "fields.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Name":"String","Amount":"Float"}`), 0644))
	cfg.Fields.Path = path
	spec, err = cfg.FieldSpec()
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Amount"}, spec.Names())
}

func TestLoggingCategories(t *testing.T) {
	lc := LoggingConfig{}
	assert.True(t, lc.IsCategoryEnabled("rows"))

	lc.Categories = map[string]bool{"rows": false}
	assert.False(t, lc.IsCategoryEnabled("rows"))
	assert.True(t, lc.IsCategoryEnabled("load"))
}
