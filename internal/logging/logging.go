// Package logging builds the logr.Logger used across the module.
// The backend is zap, bridged with zapr, so callers only ever see logr.
package logging

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels for logger.V(...)
const (
	INFO  = 0
	DEBUG = 1
	TRACE = 2
)

// Log is the process-wide base logger. It discards until Setup or NewTestLogger runs.
var Log = logr.Discard()

// NewLogger creates a zap-backed logr.Logger. Level is one of "info", "debug" or "trace".
func NewLogger(level string, development bool) (logr.Logger, error) {
	zapLevel, err := parseLevel(level)
	if err != nil {
		return logr.Discard(), err
	}

	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), fmt.Errorf("building zap logger: %w", err)
	}
	return zapr.NewLogger(zl), nil
}

// Setup builds a logger with NewLogger and installs it as Log.
func Setup(level string, development bool) (logr.Logger, error) {
	logger, err := NewLogger(level, development)
	if err != nil {
		return logger, err
	}
	Log = logger
	return logger, nil
}

// NewWriterLogger creates a console logger writing to w at the given verbosity.
func NewWriterLogger(w io.Writer, verbosity int) logr.Logger {
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zapcore.Level(-verbosity))
	return zapr.NewLogger(zap.New(core))
}

// NewTestLogger installs a debug-level logger writing to io.Discard unless
// KNAPSACK_TEST_LOG is set, in which case it writes to stderr.
func NewTestLogger() logr.Logger {
	Log = NewWriterLogger(testWriter(), DEBUG)
	return Log
}

// IntoContext returns a copy of ctx carrying logger.
func IntoContext(ctx context.Context, logger logr.Logger) context.Context {
	return logr.NewContext(ctx, logger)
}

// FromContext returns the logger in ctx, falling back to Log.
func FromContext(ctx context.Context) logr.Logger {
	if logger, err := logr.FromContext(ctx); err == nil {
		return logger
	}
	return Log
}

// parseLevel maps a level name onto zap's level scale. logr verbosity N maps to zap level -N.
func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return zapcore.Level(-INFO), nil
	case "debug":
		return zapcore.Level(-DEBUG), nil
	case "trace":
		return zapcore.Level(-TRACE), nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unsupported log level: %q", level)
	}
}
