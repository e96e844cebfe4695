package repository

import (
	"context"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultSellerRepository struct {
	DB *gorm.DB
}

func NewDefaultSellerRepository(db *gorm.DB) *DefaultSellerRepository {
	return &DefaultSellerRepository{DB: db}
}

func (r *DefaultSellerRepository) GetSellerByID(ctx context.Context, sellerID string) (*domain.Seller, error) {
	var model models.SellerModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", sellerID).Error; err != nil {
		return nil, dbErr(err, "seller "+sellerID)
	}
	return mappers.ToDomainSeller(&model), nil
}

func (r *DefaultSellerRepository) SaveSeller(ctx context.Context, seller *domain.Seller) error {
	model := mappers.ToGORMSeller(seller)
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"display_name", "commission_rate", "total_earnings", "total_commission_paid", "verified",
			"bank_name", "bank_account_number", "bank_iban", "bank_account_holder", "bank_branch_code",
			"updated_at",
		}),
	}).Create(model).Error
	return Classify(err)
}
