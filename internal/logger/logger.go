// Package logger builds the zap loggers used by the binaries.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps a level name to a zap level. quiet disables everything
// below fatal; unknown names fall back to error.
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "quiet", "q":
		return zapcore.FatalLevel
	case "debug", "d", "verbose", "v":
		return zapcore.DebugLevel
	case "info", "i":
		return zapcore.InfoLevel
	case "warn", "w":
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// New returns a development logger writing to stderr at the given level.
func New(level string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(level))
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
