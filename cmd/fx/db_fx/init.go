package db_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"moneyflow/internal/config"
	"moneyflow/internal/infra"
)

var Module = fx.Provide(provideDB)

// The logger dependency makes sure zap is initialised before connecting.
func provideDB(lc fx.Lifecycle, cfg *config.Config, _ *zap.Logger) (*gorm.DB, error) {
	db, err := infra.InitPostgresql(cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(func() {
		infra.ClosePostgresql(db)
	}))
	return db, nil
}
