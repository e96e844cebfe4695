package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ledgerEntry is one wallet mutation together with the fields of its audit record.
type ledgerEntry struct {
	Type            domain.TransactionType
	Amount          decimal.Decimal
	Status          domain.TransactionStatus
	ClearsAt        *time.Time
	OrderID         string
	CommissionID    string
	WithdrawalID    string
	AdvertisementID string
	Description     string
}

// loadWallet returns the seller's wallet, creating an empty one if none exists yet.
// A created wallet is only persisted by commitWallet.
func loadWallet(ctx context.Context, repos domain.Repositories, sellerID string, now time.Time) (*domain.SellerWallet, error) {
	wallet, err := repos.Wallets.GetWalletBySellerID(ctx, sellerID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewSellerWallet(uuid.NewString(), sellerID, now), nil
	}
	return wallet, err
}

func loadSeller(ctx context.Context, repos domain.Repositories, sellerID string, defaultRate decimal.Decimal, now time.Time) (*domain.Seller, error) {
	seller, err := repos.Sellers.GetSellerByID(ctx, sellerID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewSeller(sellerID, defaultRate, now), nil
	}
	return seller, err
}

// commitWallet checks the ledger equations, stores the wallet and appends the audit record.
func commitWallet(ctx context.Context, repos domain.Repositories, wallet *domain.SellerWallet, entry ledgerEntry, now time.Time) (*domain.Transaction, error) {
	if err := wallet.CheckInvariants(); err != nil {
		return nil, fmt.Errorf("refusing to store wallet: %w", err)
	}
	if err := repos.Wallets.SaveWallet(ctx, wallet); err != nil {
		return nil, fmt.Errorf("save wallet: %w", err)
	}

	status := entry.Status
	if status == "" {
		status = domain.TxStatusCompleted
	}
	tx := &domain.Transaction{
		ID:              uuid.NewString(),
		SellerID:        wallet.SellerID,
		WalletID:        wallet.ID,
		Type:            entry.Type,
		Amount:          entry.Amount,
		OrderID:         entry.OrderID,
		CommissionID:    entry.CommissionID,
		WithdrawalID:    entry.WithdrawalID,
		AdvertisementID: entry.AdvertisementID,
		Status:          status,
		ClearsAt:        entry.ClearsAt,
		Description:     entry.Description,
		CreatedAt:       now,
	}
	if err := repos.Transactions.AppendTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("append transaction: %w", err)
	}
	return tx, nil
}

// creditEarning books amount into the pending balance and bumps the seller's
// lifetime earnings. The earning clears after delay.
func creditEarning(ctx context.Context, repos domain.Repositories, seller *domain.Seller, entry ledgerEntry, delay time.Duration, now time.Time) (*domain.SellerWallet, *domain.Transaction, error) {
	wallet, err := loadWallet(ctx, repos, seller.ID, now)
	if err != nil {
		return nil, nil, err
	}
	if err := wallet.Credit(entry.Amount, now); err != nil {
		return nil, nil, err
	}

	clearsAt := now.Add(delay)
	entry.Type = domain.TxEarning
	entry.Status = domain.TxStatusPending
	entry.ClearsAt = &clearsAt
	tx, err := commitWallet(ctx, repos, wallet, entry, now)
	if err != nil {
		return nil, nil, err
	}

	seller.TotalEarnings = seller.TotalEarnings.Add(entry.Amount)
	seller.UpdatedAt = now
	if err := repos.Sellers.SaveSeller(ctx, seller); err != nil {
		return nil, nil, fmt.Errorf("save seller: %w", err)
	}
	return wallet, tx, nil
}

// debitAvailable takes entry.Amount out of the available balance.
func debitAvailable(ctx context.Context, repos domain.Repositories, sellerID string, reason domain.DebitReason, entry ledgerEntry, now time.Time) (*domain.SellerWallet, *domain.Transaction, error) {
	wallet, err := loadWallet(ctx, repos, sellerID, now)
	if err != nil {
		return nil, nil, err
	}
	if err := wallet.Debit(entry.Amount, reason, now); err != nil {
		return nil, nil, err
	}
	tx, err := commitWallet(ctx, repos, wallet, entry, now)
	if err != nil {
		return nil, nil, err
	}
	return wallet, tx, nil
}
