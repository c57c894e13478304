package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"moneyflow/internal/config"
	"moneyflow/pkg/logger"
)

var Module = fx.Provide(provideConfig, provideLogger)

func provideConfig() (*config.Config, error) {
	return config.Load()
}

func provideLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.Init(cfg.Log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(func() {
		_ = logger.Sync()
	}))
	return log, nil
}
