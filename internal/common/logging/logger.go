package logging

import (
	"fmt"
	"io"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewDefaultLogger creates a stdout logger honoring LOG_LEVEL
func NewDefaultLogger() Logger {
	logger, err := NewZapLogger(DefaultLogConfig())
	if err != nil {
		panic(fmt.Sprintf("failed to initialize default zap logger: %v", err))
	}
	return logger
}

// FileOptions controls rotation of the log file written by InitGlobalLogger.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// InitGlobalLogger installs the global logger. When file.Path is empty the
// logger writes to stdout, otherwise to a rotated file. The returned closer
// must be closed on exit.
func InitGlobalLogger(level string, file FileOptions) (io.Closer, error) {
	cfg := LogConfig{Level: ParseLevel(level), Service: ServiceName}

	var closer io.Closer = nopCloser{}
	if file.Path != "" {
		rotating := &lumberjack.Logger{
			Filename:   file.Path,
			MaxSize:    file.MaxSizeMB,
			MaxBackups: file.MaxBackups,
			MaxAge:     file.MaxAgeDays,
			Compress:   file.Compress,
		}
		cfg.Output = rotating
		closer = rotating
	}

	logger, err := NewZapLogger(cfg)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	SetGlobalLogger(logger)

	logger.Info("Logger initialized",
		String("level", cfg.Level.String()),
		String("log_file", file.Path),
	)
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// MustSync flushes any buffered log entries for zap loggers
func MustSync() {
	if zapLogger, ok := GetGlobalLogger().(*ZapAdapter); ok {
		_ = zapLogger.Sync()
	}
}

// WithFields is a convenience function to add fields to the global logger
func WithFields(fields ...Field) Logger {
	return GetGlobalLogger().WithFields(fields...)
}

// Strings creates a string slice field
func Strings(key string, values []string) Field {
	return Field{Key: key, Value: values}
}

// Err creates an error field with key "error"
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}
