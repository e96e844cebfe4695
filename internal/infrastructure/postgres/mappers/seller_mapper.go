package mappers

import (
	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/postgres/models"
)

func ToDomainSeller(model *models.SellerModel) *domain.Seller {
	seller := &domain.Seller{
		ID:                  model.ID,
		DisplayName:         model.DisplayName,
		CommissionRate:      model.CommissionRate,
		TotalEarnings:       model.TotalEarnings,
		TotalCommissionPaid: model.TotalCommissionPaid,
		Verified:            model.Verified,
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}
	account := domain.BankAccount{
		BankName:      model.BankName,
		AccountNumber: model.BankAccountNumber,
		IBAN:          model.BankIBAN,
		AccountHolder: model.BankAccountHolder,
		BranchCode:    model.BankBranchCode,
	}
	if !account.IsZero() {
		seller.BankAccount = &account
	}
	return seller
}

func ToGORMSeller(seller *domain.Seller) *models.SellerModel {
	model := &models.SellerModel{
		ID:                  seller.ID,
		DisplayName:         seller.DisplayName,
		CommissionRate:      seller.CommissionRate,
		TotalEarnings:       seller.TotalEarnings,
		TotalCommissionPaid: seller.TotalCommissionPaid,
		Verified:            seller.Verified,
		CreatedAt:           seller.CreatedAt,
		UpdatedAt:           seller.UpdatedAt,
	}
	if account := seller.BankAccount; account != nil {
		model.BankName = account.BankName
		model.BankAccountNumber = account.AccountNumber
		model.BankIBAN = account.IBAN
		model.BankAccountHolder = account.AccountHolder
		model.BankBranchCode = account.BranchCode
	}
	return model
}
