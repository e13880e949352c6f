package logging

import (
	"fmt"
	"strings"
)

// Config is the logging section of the config file.
type Config struct {
	Level      string          `yaml:"level"`                // debug, info, warn, error
	Format     string          `yaml:"format"`               // json, text
	File       string          `yaml:"file"`                 // optional extra sink
	Categories map[string]bool `yaml:"categories,omitempty"` // per-category toggles
}

// IsCategoryEnabled returns whether logging is enabled for a category.
// Categories not listed are enabled.
func (c *Config) IsCategoryEnabled(category string) bool {
	if c.Categories == nil {
		return true
	}
	enabled, exists := c.Categories[category]
	if !exists {
		return true
	}
	return enabled
}

// Validate checks level and format.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %s (valid: debug, info, warn, error)", c.Level)
	}
	switch strings.ToLower(c.Format) {
	case "", "json", "text":
	default:
		return fmt.Errorf("invalid logging.format: %s (valid: json, text)", c.Format)
	}
	return nil
}
