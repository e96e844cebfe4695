package repository

import (
	"context"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultWithdrawalRepository struct {
	DB *gorm.DB
}

func NewDefaultWithdrawalRepository(db *gorm.DB) *DefaultWithdrawalRepository {
	return &DefaultWithdrawalRepository{DB: db}
}

func (r *DefaultWithdrawalRepository) CreateWithdrawal(ctx context.Context, w *domain.WithdrawalRequest) error {
	return Classify(r.DB.WithContext(ctx).Create(mappers.ToGORMWithdrawal(w)).Error)
}

func (r *DefaultWithdrawalRepository) UpdateWithdrawal(ctx context.Context, w *domain.WithdrawalRequest) error {
	// amount and bank snapshot are fixed at creation
	result := r.DB.WithContext(ctx).Model(&models.WithdrawalModel{}).
		Where("id = ?", w.ID).
		Select("status", "processed_at", "admin_note", "transaction_id", "updated_at").
		Updates(mappers.ToGORMWithdrawal(w))
	if result.Error != nil {
		return Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return dbErr(gorm.ErrRecordNotFound, "withdrawal "+w.ID)
	}
	return nil
}

func (r *DefaultWithdrawalRepository) GetWithdrawalByID(ctx context.Context, withdrawalID string) (*domain.WithdrawalRequest, error) {
	var model models.WithdrawalModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", withdrawalID).Error; err != nil {
		return nil, dbErr(err, "withdrawal "+withdrawalID)
	}
	return mappers.ToDomainWithdrawal(&model), nil
}

func (r *DefaultWithdrawalRepository) ListWithdrawalsBySellerID(ctx context.Context, sellerID string) ([]*domain.WithdrawalRequest, error) {
	var rows []models.WithdrawalModel
	err := r.DB.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("requested_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, Classify(err)
	}
	out := make([]*domain.WithdrawalRequest, 0, len(rows))
	for i := range rows {
		out = append(out, mappers.ToDomainWithdrawal(&rows[i]))
	}
	return out, nil
}
