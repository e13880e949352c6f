// Package logging builds the zap logger used across housingdash. Components
// receive a *zap.Logger and name sub-loggers after a Category; categories can
// be switched off individually in the config file.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category is the first segment of a named logger.
type Category string

const (
	CategoryLoad      Category = "load"      // Reading input files
	CategoryRows      Category = "rows"      // Typed row construction warnings
	CategoryAggregate Category = "aggregate" // Funding series
	CategoryGeometry  Category = "geometry"  // Chart layout
	CategoryRender    Category = "render"    // PNG/SVG output
	CategoryReport    Category = "report"    // Markdown and workbook export
	CategoryUI        Category = "ui"        // Terminal dashboard
)

// AllCategories lists every category in display order.
func AllCategories() []Category {
	return []Category{
		CategoryLoad, CategoryRows, CategoryAggregate, CategoryGeometry,
		CategoryRender, CategoryReport, CategoryUI,
	}
}

// ParseLevel maps a config level to a zap level. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
}

// Options adjust New.
type Options struct {
	// Verbose forces debug level.
	Verbose bool
	// Quiet drops the stderr sink, leaving only the configured file. With no
	// file configured the logger discards everything.
	Quiet bool
}

// New builds a logger from cfg. Format "json" uses zap's production encoder;
// anything else uses the console encoder.
func New(cfg Config, opts Options) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	var zc zap.Config
	if strings.EqualFold(cfg.Format, "json") {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.Development = false
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = nil
	if !opts.Quiet {
		zc.OutputPaths = append(zc.OutputPaths, "stderr")
	}
	if cfg.File != "" {
		zc.OutputPaths = append(zc.OutputPaths, cfg.File)
	}
	if len(zc.OutputPaths) == 0 {
		return zap.NewNop(), nil
	}

	logger, err := zc.Build(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return FilterCategories(core, cfg)
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// FilterCategories wraps core so entries from disabled categories are
// dropped. The category is the first dot-separated segment of the logger
// name; unnamed loggers are always enabled.
func FilterCategories(core zapcore.Core, cfg Config) zapcore.Core {
	if len(cfg.Categories) == 0 {
		return core
	}
	return categoryCore{Core: core, cfg: cfg}
}

type categoryCore struct {
	zapcore.Core
	cfg Config
}

func (c categoryCore) With(fields []zapcore.Field) zapcore.Core {
	return categoryCore{Core: c.Core.With(fields), cfg: c.cfg}
}

func (c categoryCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if name := categoryOf(ent.LoggerName); name != "" && !c.cfg.IsCategoryEnabled(name) {
		return ce
	}
	return c.Core.Check(ent, ce)
}

func categoryOf(loggerName string) string {
	name, _, _ := strings.Cut(loggerName, ".")
	return name
}
