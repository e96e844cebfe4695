package mappers

import (
	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/postgres/models"
)

func ToDomainWithdrawal(model *models.WithdrawalModel) *domain.WithdrawalRequest {
	return &domain.WithdrawalRequest{
		ID:        model.ID,
		Reference: model.Reference,
		SellerID:  model.SellerID,
		Amount:    model.Amount,
		BankAccount: domain.BankAccount{
			BankName:      model.BankName,
			AccountNumber: model.BankAccountNumber,
			IBAN:          model.BankIBAN,
			AccountHolder: model.BankAccountHolder,
			BranchCode:    model.BankBranchCode,
		},
		Status:        domain.WithdrawalStatus(model.Status),
		RequestedAt:   model.RequestedAt,
		ProcessedAt:   model.ProcessedAt,
		AdminNote:     model.AdminNote,
		TransactionID: model.TransactionID,
		UpdatedAt:     model.UpdatedAt,
	}
}

func ToGORMWithdrawal(w *domain.WithdrawalRequest) *models.WithdrawalModel {
	return &models.WithdrawalModel{
		ID:                w.ID,
		Reference:         w.Reference,
		SellerID:          w.SellerID,
		Amount:            w.Amount,
		BankName:          w.BankAccount.BankName,
		BankAccountNumber: w.BankAccount.AccountNumber,
		BankIBAN:          w.BankAccount.IBAN,
		BankAccountHolder: w.BankAccount.AccountHolder,
		BankBranchCode:    w.BankAccount.BranchCode,
		Status:            string(w.Status),
		RequestedAt:       w.RequestedAt,
		ProcessedAt:       w.ProcessedAt,
		AdminNote:         w.AdminNote,
		TransactionID:     w.TransactionID,
		UpdatedAt:         w.UpdatedAt,
	}
}
