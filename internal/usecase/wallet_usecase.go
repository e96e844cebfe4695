package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/metrics"
	walletdto "github.com/LavaJover/shvark-settlement-service/internal/usecase/dto/wallet"
)

type WalletUsecase interface {
	GetWallet(ctx context.Context, sellerID string) (*domain.SellerWallet, error)
	Credit(ctx context.Context, input walletdto.CreditInput) (*walletdto.MutationOutput, error)
	Debit(ctx context.Context, input walletdto.DebitInput) (*walletdto.MutationOutput, error)
	ListTransactions(ctx context.Context, sellerID string, page, limit int) (*walletdto.TransactionsPage, error)
}

type DefaultWalletUsecase struct {
	uow      domain.UnitOfWork
	repos    domain.Repositories
	settings Settings
	effects  sideEffects
	nowFn    func() time.Time
}

func NewDefaultWalletUsecase(
	uow domain.UnitOfWork,
	repos domain.Repositories,
	settings Settings,
	events domain.EventPublisher,
	rejections domain.RejectionLog,
	m *metrics.SettlementMetrics,
) *DefaultWalletUsecase {
	return &DefaultWalletUsecase{
		uow:      uow,
		repos:    repos,
		settings: settings.withDefaults(),
		effects:  sideEffects{events: events, rejections: rejections, metrics: m},
		nowFn:    time.Now,
	}
}

// GetWallet returns the seller's wallet, creating a zero wallet on first access.
func (uc *DefaultWalletUsecase) GetWallet(ctx context.Context, sellerID string) (*domain.SellerWallet, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("%w: seller id is required", domain.ErrInvalidInput)
	}
	wallet, err := uc.repos.Wallets.GetWalletBySellerID(ctx, sellerID)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	err = uc.uow.Do(ctx, sellerID, func(repos domain.Repositories) error {
		var err error
		wallet, err = loadWallet(ctx, repos, sellerID, uc.nowFn())
		if err != nil {
			return err
		}
		return repos.Wallets.SaveWallet(ctx, wallet)
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

func (uc *DefaultWalletUsecase) Credit(ctx context.Context, input walletdto.CreditInput) (*walletdto.MutationOutput, error) {
	if input.SellerID == "" {
		return nil, fmt.Errorf("%w: seller id is required", domain.ErrInvalidInput)
	}
	if input.Source == "" {
		input.Source = domain.CreditSourceAdjustment
	}
	if err := domain.ValidatePositiveAmount(input.Amount); err != nil {
		return nil, err
	}

	now := uc.nowFn()
	out := &walletdto.MutationOutput{}
	err := uc.uow.Do(ctx, input.SellerID, func(repos domain.Repositories) error {
		seller, err := loadSeller(ctx, repos, input.SellerID, uc.settings.DefaultCommissionRate, now)
		if err != nil {
			return err
		}
		description := input.Description
		if description == "" {
			description = fmt.Sprintf("%s credit", input.Source)
		}
		out.Wallet, out.Transaction, err = creditEarning(ctx, repos, seller, ledgerEntry{
			Amount:       input.Amount,
			OrderID:      input.OrderID,
			CommissionID: input.CommissionID,
			Description:  description,
		}, uc.settings.ClearingDelay, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.effects.metrics.RecordCredit(string(input.Source), input.Amount)
	uc.effects.publish(ctx, domain.SettlementEvent{
		Type:        domain.EventWalletCredited,
		SellerID:    input.SellerID,
		Amount:      input.Amount,
		ReferenceID: out.Transaction.ID,
		Status:      string(out.Transaction.Status),
		OccurredAt:  now,
	})
	return out, nil
}

// Debit takes money out of the available balance. Check and mutation happen
// under the seller lock, so concurrent debits can never overdraw.
func (uc *DefaultWalletUsecase) Debit(ctx context.Context, input walletdto.DebitInput) (*walletdto.MutationOutput, error) {
	if input.SellerID == "" {
		return nil, fmt.Errorf("%w: seller id is required", domain.ErrInvalidInput)
	}
	if err := domain.ValidatePositiveAmount(input.Amount); err != nil {
		return nil, err
	}
	switch input.Reason {
	case domain.DebitReasonAdvertisement:
	case domain.DebitReasonWithdrawal:
		return nil, fmt.Errorf("%w: withdrawals reserve funds through a withdrawal request", domain.ErrInvalidInput)
	default:
		return nil, fmt.Errorf("%w: unknown debit reason %q", domain.ErrInvalidInput, input.Reason)
	}

	now := uc.nowFn()
	out := &walletdto.MutationOutput{}
	err := uc.uow.Do(ctx, input.SellerID, func(repos domain.Repositories) error {
		var err error
		out.Wallet, out.Transaction, err = debitAvailable(ctx, repos, input.SellerID, input.Reason, ledgerEntry{
			Type:            domain.TxAdSpend,
			Amount:          input.Amount,
			AdvertisementID: input.AdvertisementID,
			Description:     input.Description,
		}, now)
		return err
	})
	if err != nil {
		uc.effects.rejected(ctx, "wallet_debit", input.SellerID, "", input.Amount, err, now)
		return nil, err
	}

	uc.effects.metrics.RecordDebit(string(input.Reason), input.Amount)
	uc.effects.publish(ctx, domain.SettlementEvent{
		Type:        domain.EventWalletDebited,
		SellerID:    input.SellerID,
		Amount:      input.Amount,
		ReferenceID: out.Transaction.ID,
		Status:      string(input.Reason),
		OccurredAt:  now,
	})
	return out, nil
}

func (uc *DefaultWalletUsecase) ListTransactions(ctx context.Context, sellerID string, page, limit int) (*walletdto.TransactionsPage, error) {
	page, limit, _ = domain.NormalizePage(page, limit)
	txs, total, err := uc.repos.Transactions.ListTransactionsBySellerID(ctx, sellerID, page, limit)
	if err != nil {
		return nil, err
	}
	return &walletdto.TransactionsPage{Transactions: txs, Total: total, Page: page, Limit: limit}, nil
}
