package repository

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewRepositories binds every repository to db, which may be a transaction.
func NewRepositories(db *gorm.DB) domain.Repositories {
	return domain.Repositories{
		Sellers:        NewDefaultSellerRepository(db),
		Wallets:        NewDefaultWalletRepository(db),
		Transactions:   NewDefaultTransactionRepository(db),
		Commissions:    NewDefaultCommissionRepository(db),
		Withdrawals:    NewDefaultWithdrawalRepository(db),
		Advertisements: NewDefaultAdvertisementRepository(db),
	}
}

type DefaultUnitOfWork struct {
	DB *gorm.DB
}

func NewDefaultUnitOfWork(db *gorm.DB) *DefaultUnitOfWork {
	return &DefaultUnitOfWork{DB: db}
}

// Do runs fn in one transaction holding the seller's wallet row lock. The
// wallet row is inserted first if missing so that there is always a row to lock.
func (u *DefaultUnitOfWork) Do(ctx context.Context, sellerID string, fn func(repos domain.Repositories) error) error {
	err := u.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wallet := models.WalletModel{
			ID:          uuid.NewString(),
			SellerID:    sellerID,
			LastUpdated: time.Now().UTC(),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "seller_id"}},
			DoNothing: true,
		}).Create(&wallet).Error; err != nil {
			return err
		}

		var locked models.WalletModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&locked, "seller_id = ?", sellerID).Error; err != nil {
			return err
		}

		return fn(NewRepositories(tx))
	})
	return Classify(err)
}
