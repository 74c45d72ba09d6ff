package observability

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "json", "text"
}

// InitLogger builds a zap logger. "json" selects the production encoder and
// anything else the console encoder. The logger is also installed as the zap
// global.
func InitLogger(cfg LogConfig) (*zap.Logger, error) {
	var zc zap.Config
	switch strings.ToLower(cfg.Format) {
	case "json":
		zc = zap.NewProductionConfig()
	case "", "text", "console":
		zc = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("observability: invalid log format %q", cfg.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Level))
	zc.EncoderConfig.TimeKey = "ts"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("observability: build logger: %w", err)
	}
	zap.ReplaceGlobals(logger)

	return logger, nil
}

// parseLevel converts a string level to a zapcore.Level.
func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
