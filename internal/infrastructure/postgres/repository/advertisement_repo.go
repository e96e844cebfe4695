package repository

import (
	"context"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultAdvertisementRepository struct {
	DB *gorm.DB
}

func NewDefaultAdvertisementRepository(db *gorm.DB) *DefaultAdvertisementRepository {
	return &DefaultAdvertisementRepository{DB: db}
}

func (r *DefaultAdvertisementRepository) CreateAdvertisement(ctx context.Context, ad *domain.Advertisement) error {
	return Classify(r.DB.WithContext(ctx).Create(mappers.ToGORMAdvertisement(ad)).Error)
}

func (r *DefaultAdvertisementRepository) UpdateAdvertisement(ctx context.Context, ad *domain.Advertisement) error {
	result := r.DB.WithContext(ctx).Model(&models.AdvertisementModel{}).
		Where("id = ?", ad.ID).
		Select("status", "impressions", "clicks", "spent", "updated_at").
		Updates(mappers.ToGORMAdvertisement(ad))
	if result.Error != nil {
		return Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return dbErr(gorm.ErrRecordNotFound, "advertisement "+ad.ID)
	}
	return nil
}

func (r *DefaultAdvertisementRepository) DeleteAdvertisement(ctx context.Context, adID string) error {
	result := r.DB.WithContext(ctx).Delete(&models.AdvertisementModel{}, "id = ?", adID)
	if result.Error != nil {
		return Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return dbErr(gorm.ErrRecordNotFound, "advertisement "+adID)
	}
	return nil
}

func (r *DefaultAdvertisementRepository) GetAdvertisementByID(ctx context.Context, adID string) (*domain.Advertisement, error) {
	var model models.AdvertisementModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", adID).Error; err != nil {
		return nil, dbErr(err, "advertisement "+adID)
	}
	return mappers.ToDomainAdvertisement(&model), nil
}

func (r *DefaultAdvertisementRepository) ListAdvertisementsBySellerID(ctx context.Context, sellerID string) ([]*domain.Advertisement, error) {
	var rows []models.AdvertisementModel
	err := r.DB.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, Classify(err)
	}
	out := make([]*domain.Advertisement, 0, len(rows))
	for i := range rows {
		out = append(out, mappers.ToDomainAdvertisement(&rows[i]))
	}
	return out, nil
}
