package infra

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"moneyflow/internal/models/db_models"
	"moneyflow/pkg/logger"
)

// InitPostgresql opens the pool and migrates the trip schema.
func InitPostgresql(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := db.AutoMigrate(
		&db_models.Trip{},
		&db_models.Activity{},
		&db_models.Expense{},
		&db_models.EditRequest{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	logger.Get().Info("postgres connected")
	return db, nil
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Get().Error("get sql.DB failed", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Get().Error("close postgres failed", zap.Error(err))
	} else {
		logger.Get().Info("postgres connection closed")
	}
}
