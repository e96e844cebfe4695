package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/metrics"
	"github.com/shopspring/decimal"
)

type SettleResult struct {
	Sellers  int
	Earnings int
	Amount   decimal.Decimal
}

type SettlementUsecase interface {
	SettleMatured(ctx context.Context, now time.Time) (*SettleResult, error)
}

// DefaultSettlementUsecase clears matured pending earnings into the available balance.
type DefaultSettlementUsecase struct {
	uow      domain.UnitOfWork
	repos    domain.Repositories
	settings Settings
	effects  sideEffects
}

func NewDefaultSettlementUsecase(
	uow domain.UnitOfWork,
	repos domain.Repositories,
	settings Settings,
	events domain.EventPublisher,
	m *metrics.SettlementMetrics,
) *DefaultSettlementUsecase {
	return &DefaultSettlementUsecase{
		uow:      uow,
		repos:    repos,
		settings: settings.withDefaults(),
		effects:  sideEffects{events: events, metrics: m},
	}
}

// SettleMatured moves every earning with clearsAt <= now from pending to
// available, one unit of work per seller. A failing seller does not stop the others.
func (uc *DefaultSettlementUsecase) SettleMatured(ctx context.Context, now time.Time) (*SettleResult, error) {
	matured, err := uc.repos.Transactions.FindMaturedEarnings(ctx, now, uc.settings.SettleBatchSize)
	if err != nil {
		return nil, fmt.Errorf("find matured earnings: %w", err)
	}

	var sellers []string
	seen := make(map[string]bool)
	for _, tx := range matured {
		if !seen[tx.SellerID] {
			seen[tx.SellerID] = true
			sellers = append(sellers, tx.SellerID)
		}
	}

	result := &SettleResult{Amount: decimal.Zero}
	var errs []error
	for _, sellerID := range sellers {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		count, amount, err := uc.settleSeller(ctx, sellerID, now)
		if err != nil {
			slog.Error("settlement failed", "seller_id", sellerID, "error", err)
			errs = append(errs, fmt.Errorf("seller %s: %w", sellerID, err))
			continue
		}
		if count == 0 {
			continue
		}
		result.Sellers++
		result.Earnings += count
		result.Amount = result.Amount.Add(amount)
	}
	return result, errors.Join(errs...)
}

func (uc *DefaultSettlementUsecase) settleSeller(ctx context.Context, sellerID string, now time.Time) (int, decimal.Decimal, error) {
	var (
		count  int
		amount decimal.Decimal
	)
	err := uc.uow.Do(ctx, sellerID, func(repos domain.Repositories) error {
		// re-read under the lock so a concurrent run cannot settle twice
		earnings, err := repos.Transactions.ListMaturedEarningsBySellerID(ctx, sellerID, now)
		if err != nil {
			return err
		}
		if len(earnings) == 0 {
			return nil
		}

		total := decimal.Zero
		for _, e := range earnings {
			total = total.Add(e.Amount)
		}
		wallet, err := loadWallet(ctx, repos, sellerID, now)
		if err != nil {
			return err
		}
		if err := wallet.Settle(total, now); err != nil {
			return err
		}
		for _, e := range earnings {
			if err := repos.Transactions.UpdateTransactionStatus(ctx, e.ID, domain.TxStatusCompleted); err != nil {
				return err
			}
		}
		if _, err := commitWallet(ctx, repos, wallet, ledgerEntry{
			Type:        domain.TxSettlement,
			Amount:      total,
			Description: fmt.Sprintf("%d matured earnings cleared", len(earnings)),
		}, now); err != nil {
			return err
		}
		count, amount = len(earnings), total
		return nil
	})
	if err != nil || count == 0 {
		return 0, decimal.Zero, err
	}

	uc.effects.metrics.RecordSettled(amount)
	uc.effects.publish(ctx, domain.SettlementEvent{
		Type:       domain.EventWalletSettled,
		SellerID:   sellerID,
		Amount:     amount,
		Status:     string(domain.TxStatusCompleted),
		OccurredAt: now,
	})
	return count, amount, nil
}
