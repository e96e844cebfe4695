package repository

import (
	"context"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultCommissionRepository struct {
	DB *gorm.DB
}

func NewDefaultCommissionRepository(db *gorm.DB) *DefaultCommissionRepository {
	return &DefaultCommissionRepository{DB: db}
}

func (r *DefaultCommissionRepository) CreateCommission(ctx context.Context, c *domain.Commission) error {
	return Classify(r.DB.WithContext(ctx).Create(mappers.ToGORMCommission(c)).Error)
}

func (r *DefaultCommissionRepository) UpdateCommission(ctx context.Context, c *domain.Commission) error {
	result := r.DB.WithContext(ctx).Model(&models.CommissionModel{}).
		Where("id = ?", c.ID).
		Select("*").
		Updates(mappers.ToGORMCommission(c))
	if result.Error != nil {
		return Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return dbErr(gorm.ErrRecordNotFound, "commission "+c.ID)
	}
	return nil
}

func (r *DefaultCommissionRepository) GetCommissionByID(ctx context.Context, commissionID string) (*domain.Commission, error) {
	var model models.CommissionModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", commissionID).Error; err != nil {
		return nil, dbErr(err, "commission "+commissionID)
	}
	return mappers.ToDomainCommission(&model), nil
}

func (r *DefaultCommissionRepository) GetCommissionByLineItem(ctx context.Context, orderID, lineItemID string) (*domain.Commission, error) {
	var model models.CommissionModel
	err := r.DB.WithContext(ctx).
		First(&model, "order_id = ? AND line_item_id = ?", orderID, lineItemID).Error
	if err != nil {
		return nil, dbErr(err, "commission for order "+orderID+"/"+lineItemID)
	}
	return mappers.ToDomainCommission(&model), nil
}

func (r *DefaultCommissionRepository) ListCommissionsBySellerID(ctx context.Context, sellerID string, page, limit int) ([]*domain.Commission, int64, error) {
	_, limit, offset := domain.NormalizePage(page, limit)

	var total int64
	query := r.DB.WithContext(ctx).Model(&models.CommissionModel{}).Where("seller_id = ?", sellerID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, Classify(err)
	}

	var rows []models.CommissionModel
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, Classify(err)
	}
	out := make([]*domain.Commission, 0, len(rows))
	for i := range rows {
		out = append(out, mappers.ToDomainCommission(&rows[i]))
	}
	return out, total, nil
}
