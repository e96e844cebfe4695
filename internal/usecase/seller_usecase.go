package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
)

type SellerUsecase interface {
	GetSeller(ctx context.Context, sellerID string) (*domain.Seller, error)
	GetBankAccount(ctx context.Context, sellerID string) (*domain.BankAccount, error)
	UpdateBankAccount(ctx context.Context, sellerID string, account domain.BankAccount) (*domain.BankAccount, error)
}

type DefaultSellerUsecase struct {
	uow      domain.UnitOfWork
	repos    domain.Repositories
	settings Settings
	nowFn    func() time.Time
}

func NewDefaultSellerUsecase(uow domain.UnitOfWork, repos domain.Repositories, settings Settings) *DefaultSellerUsecase {
	return &DefaultSellerUsecase{
		uow:      uow,
		repos:    repos,
		settings: settings.withDefaults(),
		nowFn:    time.Now,
	}
}

func (uc *DefaultSellerUsecase) GetSeller(ctx context.Context, sellerID string) (*domain.Seller, error) {
	return uc.repos.Sellers.GetSellerByID(ctx, sellerID)
}

func (uc *DefaultSellerUsecase) GetBankAccount(ctx context.Context, sellerID string) (*domain.BankAccount, error) {
	seller, err := uc.repos.Sellers.GetSellerByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if seller.BankAccount == nil {
		return nil, fmt.Errorf("bank account of seller %s: %w", sellerID, domain.ErrNotFound)
	}
	return seller.BankAccount, nil
}

// UpdateBankAccount validates and saves the default payout account, creating
// the seller profile when needed.
func (uc *DefaultSellerUsecase) UpdateBankAccount(ctx context.Context, sellerID string, account domain.BankAccount) (*domain.BankAccount, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("%w: seller id is required", domain.ErrInvalidInput)
	}
	normalized, err := account.Validate(uc.settings.IBANRule)
	if err != nil {
		return nil, err
	}

	now := uc.nowFn()
	err = uc.uow.Do(ctx, sellerID, func(repos domain.Repositories) error {
		seller, err := loadSeller(ctx, repos, sellerID, uc.settings.DefaultCommissionRate, now)
		if err != nil {
			return err
		}
		seller.BankAccount = &normalized
		seller.UpdatedAt = now
		return repos.Sellers.SaveSeller(ctx, seller)
	})
	if err != nil {
		return nil, err
	}
	return &normalized, nil
}
