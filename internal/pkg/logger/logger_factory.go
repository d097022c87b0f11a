package logger

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/MGTheTrain/docsign/internal/pkg/config"
)

// ServiceName is attached to every record of the process-wide logger.
const ServiceName = "docsign"

// levelCritical sits above slog's error level so critical records survive any filter.
const levelCritical = slog.LevelError + 4

var (
	loggerInstance Logger
	loggerErr      error
	loggerOnce     sync.Once
)

// InitLogger builds the process-wide logger. Only the first call has an effect;
// later calls return the outcome of the first one.
func InitLogger(settings *config.LoggerSettings) error {
	loggerOnce.Do(func() {
		loggerInstance, loggerErr = newLogger(settings)
	})
	return loggerErr
}

// GetLogger returns the logger built by InitLogger.
func GetLogger() (Logger, error) {
	if loggerInstance == nil {
		return nil, fmt.Errorf("logger not initialized: call InitLogger first")
	}
	return loggerInstance, nil
}

func newLogger(settings *config.LoggerSettings) (Logger, error) {
	if settings == nil {
		return nil, fmt.Errorf("logger settings must not be nil")
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logger settings: %w", err)
	}

	var backend Logger
	switch settings.LogType {
	case config.LogTypeConsole:
		backend = NewConsoleLogger(settings.LogLevel)
	case config.LogTypeFile:
		backend = NewFileLogger(settings.LogLevel, settings.FilePath, settings.MaxSize, settings.MaxBackups, settings.MaxAge)
	default:
		return nil, fmt.Errorf("unsupported log type: %s", settings.LogType)
	}

	return With(backend, "service", ServiceName), nil
}

// With returns a logger that adds the key/value attributes to every record.
// Loggers not built by this package are returned unchanged.
func With(l Logger, args ...interface{}) Logger {
	s, ok := l.(*slogLogger)
	if !ok {
		return l
	}
	return &slogLogger{logger: s.logger.With(args...)}
}

func parseLevel(level string) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarning:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	case config.LogLevelCritical:
		return levelCritical
	default:
		return slog.LevelInfo
	}
}

func formatArgs(args ...interface{}) string {
	if len(args) == 0 {
		return ""
	}
	return fmt.Sprint(args...)
}
