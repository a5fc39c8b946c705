// Package logging builds the zap loggers used by the relaxfit command and tests.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TRACE is the verbosity step below zap's Debug level.
const TRACE = 2

// New builds a logger for the named level ("trace", "debug", "info", "warn",
// "error"). Debug and trace use the human-readable development encoder;
// everything else logs JSON.
func New(level string) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	if lvl <= zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build(zap.AddCaller())
}

// ParseLevel maps a level name to a zapcore.Level; "trace" sits one step below debug.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "trace":
		return zapcore.Level(-1 * TRACE), nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return 0, fmt.Errorf("logging: %w", err)
	}

	return lvl, nil
}

// NewTestLogger creates a new Zap logger using the dev mode.
func NewTestLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-1 * TRACE))
	l, err := cfg.Build(zap.AddCaller())
	if err != nil {
		return zap.NewNop()
	}

	return l
}
