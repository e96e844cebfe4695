package postgres

import (
	"fmt"

	"github.com/LavaJover/shvark-settlement-service/internal/config"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the settlement database and brings the schema up to date:
// SQL migrations when a migrations path is configured, AutoMigrate otherwise.
func InitDB(cfg config.SettlementDB) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if cfg.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.MigrationsPath); err != nil {
			return nil, err
		}
		return db, nil
	}

	if err := db.AutoMigrate(
		&models.SellerModel{},
		&models.WalletModel{},
		&models.TransactionModel{},
		&models.CommissionModel{},
		&models.WithdrawalModel{},
		&models.AdvertisementModel{},
		&logger.RejectedOperationEvent{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return db, nil
}
