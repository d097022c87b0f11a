package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Log level constants
const (
	LogLevelInfo     = "info"
	LogLevelDebug    = "debug"
	LogLevelError    = "error"
	LogLevelWarning  = "warning"
	LogLevelCritical = "critical"
)

// Log type constants
const (
	LogTypeConsole = "console"
	LogTypeFile    = "file"
)

// Rotation defaults applied by the config loader for file logging
const (
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28
)

// LoggerSettings selects the log backend. Rotation limits only apply to the file backend.
type LoggerSettings struct {
	LogLevel   string `mapstructure:"log_level" validate:"required,oneof=info debug error warning critical"`
	LogType    string `mapstructure:"log_type" validate:"required,oneof=console file"`
	FilePath   string `mapstructure:"file_path" validate:"required_if=LogType file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// rotationLimit bounds one lumberjack setting.
type rotationLimit struct {
	name     string
	value    int
	min, max int
	unit     string
}

// Validate checks the log level and type, and the rotation limits of a file logger
func (s *LoggerSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed for LoggerSettings: %v", messages)
		}
		return fmt.Errorf("validation failed for LoggerSettings: %w", err)
	}

	if s.LogType != LogTypeFile {
		return nil
	}

	for _, limit := range []rotationLimit{
		{"max size", s.MaxSize, 1, 100, "MB"},
		{"max backups", s.MaxBackups, 1, 10, "files"},
		{"max age", s.MaxAge, 1, 365, "days"},
	} {
		if limit.value < limit.min || limit.value > limit.max {
			return fmt.Errorf("%s must be between %d and %d %s, got %d", limit.name, limit.min, limit.max, limit.unit, limit.value)
		}
	}

	return nil
}
