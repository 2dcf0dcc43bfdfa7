package config

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// Validate checks the level and format names.
func (c LoggingConfig) Validate() error {
	if _, err := zapcore.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("invalid logging.level: %w", err)
	}
	switch c.Format {
	case "", "console", "json":
		return nil
	}
	return fmt.Errorf("invalid logging.format: %q (valid: console, json)", c.Format)
}
