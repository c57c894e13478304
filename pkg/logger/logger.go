// Package logger holds the process-wide zap logger. Until Init runs it is a
// no-op logger, so package tests stay quiet.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"moneyflow/internal/config"
)

var log = zap.NewNop()

// Init builds a logger from cfg, installs it and returns it. An unknown
// level falls back to info.
func Init(cfg config.LogConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = parseLevel(cfg.Level)

	built, err := zc.Build(zap.Fields(zap.String("service", "moneyflow")))
	if err != nil {
		return nil, err
	}
	log = built
	return built, nil
}

func parseLevel(level string) zap.AtomicLevel {
	lvl, err := zap.ParseAtomicLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return lvl
}

func Get() *zap.Logger {
	return log
}

// Sync flushes buffered entries.
func Sync() error {
	return log.Sync()
}
