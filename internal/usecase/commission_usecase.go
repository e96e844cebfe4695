package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/metrics"
	commissiondto "github.com/LavaJover/shvark-settlement-service/internal/usecase/dto/commission"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CommissionUsecase interface {
	Calculate(ctx context.Context, input commissiondto.CalculateInput) (*domain.Commission, error)
	NetEarning(commission *domain.Commission) decimal.Decimal
	Pay(ctx context.Context, commissionID string) (*domain.Commission, error)
	Cancel(ctx context.Context, commissionID string) (*domain.Commission, error)
	SetCommissionRate(ctx context.Context, sellerID string, rate decimal.Decimal) (*domain.Seller, error)
	ListBySeller(ctx context.Context, sellerID string, page, limit int) (*commissiondto.CommissionsPage, error)
}

type DefaultCommissionUsecase struct {
	uow      domain.UnitOfWork
	repos    domain.Repositories
	settings Settings
	effects  sideEffects
	nowFn    func() time.Time
}

func NewDefaultCommissionUsecase(
	uow domain.UnitOfWork,
	repos domain.Repositories,
	settings Settings,
	events domain.EventPublisher,
	m *metrics.SettlementMetrics,
) *DefaultCommissionUsecase {
	return &DefaultCommissionUsecase{
		uow:      uow,
		repos:    repos,
		settings: settings.withDefaults(),
		effects:  sideEffects{events: events, metrics: m},
		nowFn:    time.Now,
	}
}

func validateCalculateInput(input commissiondto.CalculateInput) error {
	if input.OrderID == "" || input.LineItemID == "" || input.SellerID == "" {
		return fmt.Errorf("%w: order id, line item id and seller id are required", domain.ErrInvalidInput)
	}
	return domain.ValidateOrderAmount(input.OrderAmount)
}

// calculateInTx stores the commission of one line item at the seller's current
// rate. The second result is false when the line item already had one.
func calculateInTx(ctx context.Context, repos domain.Repositories, seller *domain.Seller, input commissiondto.CalculateInput, now time.Time) (*domain.Commission, bool, error) {
	existing, err := repos.Commissions.GetCommissionByLineItem(ctx, input.OrderID, input.LineItemID)
	if err == nil {
		if existing.SellerID != input.SellerID {
			return nil, false, fmt.Errorf("%w: line item %s/%s belongs to seller %s", domain.ErrInvalidInput, input.OrderID, input.LineItemID, existing.SellerID)
		}
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}

	orderAmount := domain.RoundMoney(input.OrderAmount)
	commission := &domain.Commission{
		ID:               uuid.NewString(),
		OrderID:          input.OrderID,
		LineItemID:       input.LineItemID,
		SellerID:         seller.ID,
		OrderAmount:      orderAmount,
		CommissionRate:   seller.CommissionRate,
		CommissionAmount: domain.CommissionAmount(orderAmount, seller.CommissionRate),
		Status:           domain.CommissionPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := commission.TransitionTo(domain.CommissionCalculated, now); err != nil {
		return nil, false, err
	}
	if err := repos.Commissions.CreateCommission(ctx, commission); err != nil {
		return nil, false, fmt.Errorf("create commission: %w", err)
	}
	return commission, true, nil
}

// Calculate computes and stores the commission of one order line item.
// Repeating the call for the same line item returns the stored commission.
func (uc *DefaultCommissionUsecase) Calculate(ctx context.Context, input commissiondto.CalculateInput) (*domain.Commission, error) {
	if err := validateCalculateInput(input); err != nil {
		return nil, err
	}

	now := uc.nowFn()
	var (
		commission *domain.Commission
		created    bool
	)
	err := uc.uow.Do(ctx, input.SellerID, func(repos domain.Repositories) error {
		seller, err := loadSeller(ctx, repos, input.SellerID, uc.settings.DefaultCommissionRate, now)
		if err != nil {
			return err
		}
		if err := repos.Sellers.SaveSeller(ctx, seller); err != nil {
			return err
		}
		commission, created, err = calculateInTx(ctx, repos, seller, input, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	if created {
		uc.effects.metrics.RecordCommission(commission.CommissionAmount)
	}
	return commission, nil
}

func (uc *DefaultCommissionUsecase) NetEarning(commission *domain.Commission) decimal.Decimal {
	return domain.NetEarning(commission)
}

// Pay settles the platform cut of a calculated commission.
func (uc *DefaultCommissionUsecase) Pay(ctx context.Context, commissionID string) (*domain.Commission, error) {
	commission, err := uc.transition(ctx, commissionID, domain.CommissionPaid, func(repos domain.Repositories, c *domain.Commission, now time.Time) error {
		seller, err := loadSeller(ctx, repos, c.SellerID, uc.settings.DefaultCommissionRate, now)
		if err != nil {
			return err
		}
		seller.TotalCommissionPaid = seller.TotalCommissionPaid.Add(c.CommissionAmount)
		seller.UpdatedAt = now
		return repos.Sellers.SaveSeller(ctx, seller)
	})
	if err != nil {
		return nil, err
	}

	uc.effects.publish(ctx, domain.SettlementEvent{
		Type:        domain.EventCommissionPaid,
		SellerID:    commission.SellerID,
		Amount:      commission.CommissionAmount,
		ReferenceID: commission.ID,
		Status:      string(commission.Status),
		OccurredAt:  *commission.PaidAt,
	})
	return commission, nil
}

func (uc *DefaultCommissionUsecase) Cancel(ctx context.Context, commissionID string) (*domain.Commission, error) {
	return uc.transition(ctx, commissionID, domain.CommissionCancelled, nil)
}

func (uc *DefaultCommissionUsecase) transition(
	ctx context.Context,
	commissionID string,
	next domain.CommissionStatus,
	also func(repos domain.Repositories, c *domain.Commission, now time.Time) error,
) (*domain.Commission, error) {
	current, err := uc.repos.Commissions.GetCommissionByID(ctx, commissionID)
	if err != nil {
		return nil, err
	}

	now := uc.nowFn()
	var commission *domain.Commission
	err = uc.uow.Do(ctx, current.SellerID, func(repos domain.Repositories) error {
		commission, err = repos.Commissions.GetCommissionByID(ctx, commissionID)
		if err != nil {
			return err
		}
		if err := commission.TransitionTo(next, now); err != nil {
			return err
		}
		if err := repos.Commissions.UpdateCommission(ctx, commission); err != nil {
			return err
		}
		if also != nil {
			return also(repos, commission, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return commission, nil
}

// SetCommissionRate changes the rate used for future commissions. Stored
// commissions keep the rate they were calculated with.
func (uc *DefaultCommissionUsecase) SetCommissionRate(ctx context.Context, sellerID string, rate decimal.Decimal) (*domain.Seller, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("%w: seller id is required", domain.ErrInvalidInput)
	}
	if err := domain.ValidateCommissionRate(rate); err != nil {
		return nil, err
	}

	now := uc.nowFn()
	var seller *domain.Seller
	err := uc.uow.Do(ctx, sellerID, func(repos domain.Repositories) error {
		var err error
		seller, err = loadSeller(ctx, repos, sellerID, uc.settings.DefaultCommissionRate, now)
		if err != nil {
			return err
		}
		seller.CommissionRate = rate
		seller.UpdatedAt = now
		return repos.Sellers.SaveSeller(ctx, seller)
	})
	if err != nil {
		return nil, err
	}
	return seller, nil
}

func (uc *DefaultCommissionUsecase) ListBySeller(ctx context.Context, sellerID string, page, limit int) (*commissiondto.CommissionsPage, error) {
	page, limit, _ = domain.NormalizePage(page, limit)
	commissions, total, err := uc.repos.Commissions.ListCommissionsBySellerID(ctx, sellerID, page, limit)
	if err != nil {
		return nil, err
	}
	return &commissiondto.CommissionsPage{Commissions: commissions, Total: total, Page: page, Limit: limit}, nil
}
