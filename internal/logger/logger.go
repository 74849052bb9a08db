// Package logger holds the process-wide structured logger.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the global logger instance. It defaults to a no-op logger so
// library code and tests can log without initialization.
var Log = zap.NewNop().Sugar()

// Config contains configuration for the logger.
type Config struct {
	Debug  bool   // Enable debug level logging
	Format string // "json" or "human"
}

// Init initializes the global logger with the provided configuration.
func Init(config Config) error {
	var zapConfig zap.Config

	if config.Format == "json" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if config.Debug {
		zapConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		zapConfig.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	built, err := zapConfig.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	Log = built.Sugar()
	return nil
}

// Sync flushes any buffered log entries.
func Sync() error {
	return Log.Sync()
}
