package config

import (
	"fmt"
	"strings"
)

// LogConfig selects the level and encoding of the process logger.
// Format is "json" (default) or "text" for local development.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// String returns a string representation of the log configuration.
func (c *LogConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Log ---\n")
	b.WriteString(fmt.Sprintf("  level: %s\n", c.Level))
	b.WriteString(fmt.Sprintf("  format: %s\n", c.Format))
	return b.String()
}

// Validate accepts empty values, which fall back to info and json.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log level: %q", c.Level)
	}
	switch c.Format {
	case "", "json", "text":
		return nil
	default:
		return fmt.Errorf("unsupported log format: %q", c.Format)
	}
}
