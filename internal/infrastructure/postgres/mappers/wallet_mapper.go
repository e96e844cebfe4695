package mappers

import (
	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/postgres/models"
)

func ToDomainWallet(model *models.WalletModel) *domain.SellerWallet {
	return &domain.SellerWallet{
		ID:               model.ID,
		SellerID:         model.SellerID,
		Balance:          model.Balance,
		AvailableBalance: model.AvailableBalance,
		PendingBalance:   model.PendingBalance,
		ReservedBalance:  model.ReservedBalance,
		TotalEarnings:    model.TotalEarnings,
		TotalWithdrawn:   model.TotalWithdrawn,
		TotalSpentOnAds:  model.TotalSpentOnAds,
		LastUpdated:      model.LastUpdated,
	}
}

func ToGORMWallet(wallet *domain.SellerWallet) *models.WalletModel {
	return &models.WalletModel{
		ID:               wallet.ID,
		SellerID:         wallet.SellerID,
		Balance:          wallet.Balance,
		AvailableBalance: wallet.AvailableBalance,
		PendingBalance:   wallet.PendingBalance,
		ReservedBalance:  wallet.ReservedBalance,
		TotalEarnings:    wallet.TotalEarnings,
		TotalWithdrawn:   wallet.TotalWithdrawn,
		TotalSpentOnAds:  wallet.TotalSpentOnAds,
		LastUpdated:      wallet.LastUpdated,
	}
}

func ToDomainTransaction(model *models.TransactionModel) *domain.Transaction {
	return &domain.Transaction{
		ID:              model.ID,
		SellerID:        model.SellerID,
		WalletID:        model.WalletID,
		Type:            domain.TransactionType(model.Type),
		Amount:          model.Amount,
		OrderID:         model.OrderID,
		CommissionID:    model.CommissionID,
		WithdrawalID:    model.WithdrawalID,
		AdvertisementID: model.AdvertisementID,
		Status:          domain.TransactionStatus(model.Status),
		ClearsAt:        model.ClearsAt,
		Description:     model.Description,
		CreatedAt:       model.CreatedAt,
	}
}

func ToGORMTransaction(tx *domain.Transaction) *models.TransactionModel {
	return &models.TransactionModel{
		ID:              tx.ID,
		SellerID:        tx.SellerID,
		WalletID:        tx.WalletID,
		Type:            string(tx.Type),
		Amount:          tx.Amount,
		OrderID:         tx.OrderID,
		CommissionID:    tx.CommissionID,
		WithdrawalID:    tx.WithdrawalID,
		AdvertisementID: tx.AdvertisementID,
		Status:          string(tx.Status),
		ClearsAt:        tx.ClearsAt,
		Description:     tx.Description,
		CreatedAt:       tx.CreatedAt,
	}
}
