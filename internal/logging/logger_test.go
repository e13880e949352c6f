package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"DEBUG":   zapcore.DebugLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("trace")
	assert.Error(t, err)
}

func TestFilterCategories(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := Config{Categories: map[string]bool{"rows": false}}
	logger := zap.New(FilterCategories(core, cfg))

	logger.Named("rows").Warn("row parse warning")
	logger.Named("load").Info("dataset loaded")
	logger.Named("ui").Named("load").Info("reload requested")
	logger.Named("rows").With(zap.Int("line", 3)).Warn("still dropped")
	logger.Info("unnamed")

	var msgs []string
	for _, e := range logs.All() {
		msgs = append(msgs, e.Message)
	}
	assert.Equal(t, []string{"dataset loaded", "reload requested", "unnamed"}, msgs)
}

func TestFilterCategoriesPassthrough(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	assert.Equal(t, core, FilterCategories(core, Config{}))
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "housingdash.log")
	cfg := Config{
		Level:      "info",
		Format:     "json",
		File:       path,
		Categories: map[string]bool{string(CategoryRender): false},
	}
	logger, err := New(cfg, Options{Quiet: true})
	require.NoError(t, err)

	logger.Named(string(CategoryLoad)).Info("dataset loaded", zap.Int("rows", 7))
	logger.Named(string(CategoryRender)).Info("chart written")
	logger.Debug("below level")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"msg":"dataset loaded"`)
	assert.Contains(t, out, `"logger":"load"`)
	assert.NotContains(t, out, "chart written")
	assert.NotContains(t, out, "below level")
}

func TestNewVerbose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	logger, err := New(Config{Level: "error", File: path}, Options{Verbose: true, Quiet: true})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewQuietWithoutFileIsNop(t *testing.T) {
	logger, err := New(Config{}, Options{Quiet: true})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"}, Options{})
	assert.Error(t, err)
}

func TestAllCategories(t *testing.T) {
	assert.Len(t, AllCategories(), 7)
	assert.Contains(t, AllCategories(), CategoryRows)
}

func TestConfigValidateAndCategories(t *testing.T) {
	c := Config{Level: "WARN", Format: "json", Categories: map[string]bool{string(CategoryAggregate): false}}
	require.NoError(t, c.Validate())
	assert.False(t, c.IsCategoryEnabled(string(CategoryAggregate)))
	assert.True(t, c.IsCategoryEnabled(string(CategoryGeometry)))

	c.Format = "xml"
	assert.Error(t, c.Validate())
}
