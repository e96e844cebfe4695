package mappers

import (
	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/postgres/models"
)

func ToDomainCommission(model *models.CommissionModel) *domain.Commission {
	return &domain.Commission{
		ID:               model.ID,
		OrderID:          model.OrderID,
		LineItemID:       model.LineItemID,
		SellerID:         model.SellerID,
		OrderAmount:      model.OrderAmount,
		CommissionRate:   model.CommissionRate,
		CommissionAmount: model.CommissionAmount,
		Status:           domain.CommissionStatus(model.Status),
		PaidAt:           model.PaidAt,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

func ToGORMCommission(c *domain.Commission) *models.CommissionModel {
	return &models.CommissionModel{
		ID:               c.ID,
		OrderID:          c.OrderID,
		LineItemID:       c.LineItemID,
		SellerID:         c.SellerID,
		OrderAmount:      c.OrderAmount,
		CommissionRate:   c.CommissionRate,
		CommissionAmount: c.CommissionAmount,
		Status:           string(c.Status),
		PaidAt:           c.PaidAt,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
