// Package logger builds the zap loggers shared by the engine, window and controllers.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config describes how the engine logger is built.
type Config struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"` // json or console
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the production defaults: info level, json output.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "json",
	}
}

// DevelopmentConfig returns a debug-level console configuration.
func DevelopmentConfig() Config {
	return Config{
		Level:       "debug",
		Format:      "console",
		Development: true,
	}
}

// New builds a zap logger from cfg. An unparseable level falls back to info and any format
// other than "console" is treated as json.
//
// Parameters:
//   - cfg: the logger configuration
//
// Returns:
//   - *zap.Logger: the configured logger
//   - error: an error if zap fails to build the logger
func New(cfg Config) (*zap.Logger, error) {
	zapConfig := buildConfig(cfg)

	logger, err := zapConfig.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

func buildConfig(cfg Config) zap.Config {
	var zapConfig zap.Config
	if cfg.Development {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	if cfg.Format == "console" {
		zapConfig.Encoding = "console"
	} else {
		zapConfig.Encoding = "json"
	}

	// per-frame debug output must not be dropped
	zapConfig.Sampling = nil
	return zapConfig
}
