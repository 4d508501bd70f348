package config

import (
	"fmt"
	"slices"
)

var (
	logLevels  = []string{"", "debug", "info", "warn", "error"}
	logFormats = []string{"", "json", "text"}
)

// LogConfig selects the slog level and handler. Empty values mean info and json.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func (c *LogConfig) String() string {
	return fmt.Sprintf("\n--- Log ---\n  level: %s\n  format: %s\n", c.Level, c.Format)
}

func (c *LogConfig) Validate() error {
	if !slices.Contains(logLevels, c.Level) {
		return fmt.Errorf("unknown log level: %q", c.Level)
	}
	if !slices.Contains(logFormats, c.Format) {
		return fmt.Errorf("unknown log format: %q", c.Format)
	}
	return nil
}
