package mappers

import (
	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/postgres/models"
)

func ToDomainAdvertisement(model *models.AdvertisementModel) *domain.Advertisement {
	return &domain.Advertisement{
		ID:           model.ID,
		SellerID:     model.SellerID,
		ProductID:    model.ProductID,
		PackageID:    model.PackageID,
		Type:         domain.AdType(model.Type),
		Cost:         model.Cost,
		DurationDays: model.DurationDays,
		StartDate:    model.StartDate,
		EndDate:      model.EndDate,
		Status:       domain.AdStatus(model.Status),
		Budget:       model.Budget,
		Spent:        model.Spent,
		Impressions:  model.Impressions,
		Clicks:       model.Clicks,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func ToGORMAdvertisement(ad *domain.Advertisement) *models.AdvertisementModel {
	return &models.AdvertisementModel{
		ID:           ad.ID,
		SellerID:     ad.SellerID,
		ProductID:    ad.ProductID,
		PackageID:    ad.PackageID,
		Type:         string(ad.Type),
		Cost:         ad.Cost,
		DurationDays: ad.DurationDays,
		StartDate:    ad.StartDate,
		EndDate:      ad.EndDate,
		Status:       string(ad.Status),
		Budget:       ad.Budget,
		Spent:        ad.Spent,
		Impressions:  ad.Impressions,
		Clicks:       ad.Clicks,
		CreatedAt:    ad.CreatedAt,
		UpdatedAt:    ad.UpdatedAt,
	}
}
