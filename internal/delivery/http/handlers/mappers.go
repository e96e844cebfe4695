package handlers

import (
	advertisementResponse "github.com/LavaJover/shvark-settlement-service/internal/delivery/http/dto/advertisement/response"
	walletResponse "github.com/LavaJover/shvark-settlement-service/internal/delivery/http/dto/wallet/response"
	withdrawalRequest "github.com/LavaJover/shvark-settlement-service/internal/delivery/http/dto/withdrawal/request"
	withdrawalResponse "github.com/LavaJover/shvark-settlement-service/internal/delivery/http/dto/withdrawal/response"
	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(domain.MoneyPlaces)
}

func ToWalletResponse(w *domain.SellerWallet) walletResponse.WalletResponse {
	return walletResponse.WalletResponse{
		WalletID:         w.ID,
		SellerID:         w.SellerID,
		Balance:          money(w.Balance),
		AvailableBalance: money(w.AvailableBalance),
		PendingBalance:   money(w.PendingBalance),
		ReservedBalance:  money(w.ReservedBalance),
		TotalEarnings:    money(w.TotalEarnings),
		TotalWithdrawn:   money(w.TotalWithdrawn),
		TotalSpentOnAds:  money(w.TotalSpentOnAds),
		LastUpdated:      w.LastUpdated,
	}
}

func ToTransactionResponse(tx *domain.Transaction) walletResponse.TransactionResponse {
	return walletResponse.TransactionResponse{
		TransactionID:   tx.ID,
		Type:            string(tx.Type),
		Amount:          money(tx.Amount),
		Status:          string(tx.Status),
		OrderID:         tx.OrderID,
		CommissionID:    tx.CommissionID,
		WithdrawalID:    tx.WithdrawalID,
		AdvertisementID: tx.AdvertisementID,
		ClearsAt:        tx.ClearsAt,
		Description:     tx.Description,
		CreatedAt:       tx.CreatedAt,
	}
}

func ToCommissionResponse(c *domain.Commission) walletResponse.CommissionResponse {
	return walletResponse.CommissionResponse{
		CommissionID:     c.ID,
		OrderID:          c.OrderID,
		LineItemID:       c.LineItemID,
		OrderAmount:      money(c.OrderAmount),
		CommissionRate:   c.CommissionRate.String(),
		CommissionAmount: money(c.CommissionAmount),
		NetEarning:       money(domain.NetEarning(c)),
		Status:           string(c.Status),
		PaidAt:           c.PaidAt,
		CreatedAt:        c.CreatedAt,
	}
}

func ToBankAccountResponse(a domain.BankAccount) withdrawalResponse.BankAccountResponse {
	return withdrawalResponse.BankAccountResponse{
		BankName:      a.BankName,
		AccountNumber: a.AccountNumber,
		IBAN:          a.IBAN,
		AccountHolder: a.AccountHolder,
		BranchCode:    a.BranchCode,
	}
}

func ToDomainBankAccount(r *withdrawalRequest.BankAccountRequest) *domain.BankAccount {
	if r == nil {
		return nil
	}
	return &domain.BankAccount{
		BankName:      r.BankName,
		AccountNumber: r.AccountNumber,
		IBAN:          r.IBAN,
		AccountHolder: r.AccountHolder,
		BranchCode:    r.BranchCode,
	}
}

func ToWithdrawalResponse(w *domain.WithdrawalRequest) withdrawalResponse.WithdrawalResponse {
	return withdrawalResponse.WithdrawalResponse{
		WithdrawalID:  w.ID,
		Reference:     w.Reference,
		SellerID:      w.SellerID,
		Amount:        money(w.Amount),
		Status:        string(w.Status),
		BankAccount:   ToBankAccountResponse(w.BankAccount),
		RequestedAt:   w.RequestedAt,
		ProcessedAt:   w.ProcessedAt,
		AdminNote:     w.AdminNote,
		TransactionID: w.TransactionID,
	}
}

func ToPackageResponse(p domain.AdvertisementPackage) advertisementResponse.PackageResponse {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return advertisementResponse.PackageResponse{
		PackageID:    p.ID,
		Name:         p.Name,
		Description:  p.Description,
		DurationDays: p.DurationDays,
		Price:        money(p.Price),
		Features:     features,
		Type:         string(p.Type),
	}
}

func ToAdvertisementResponse(ad *domain.Advertisement) advertisementResponse.AdvertisementResponse {
	return advertisementResponse.AdvertisementResponse{
		AdvertisementID: ad.ID,
		SellerID:        ad.SellerID,
		ProductID:       ad.ProductID,
		PackageID:       ad.PackageID,
		Type:            string(ad.Type),
		Cost:            money(ad.Cost),
		DurationDays:    ad.DurationDays,
		Status:          string(ad.Status),
		Budget:          money(ad.Budget),
		Spent:           money(ad.Spent),
		Impressions:     ad.Impressions,
		Clicks:          ad.Clicks,
		StartDate:       ad.StartDate,
		EndDate:         ad.EndDate,
	}
}
