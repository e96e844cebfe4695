package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/metrics"
	advertisementdto "github.com/LavaJover/shvark-settlement-service/internal/usecase/dto/advertisement"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AdvertisementUsecase interface {
	ListPackages() []domain.AdvertisementPackage
	PurchasePackage(ctx context.Context, input advertisementdto.PurchaseInput) (*domain.Advertisement, error)
	Pause(ctx context.Context, adID string) (*domain.Advertisement, error)
	Resume(ctx context.Context, adID string) (*domain.Advertisement, error)
	Cancel(ctx context.Context, adID string) (*domain.Advertisement, error)
	Delete(ctx context.Context, adID string) error
	Get(ctx context.Context, adID string) (*domain.Advertisement, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*domain.Advertisement, error)
	RecordImpression(ctx context.Context, adID string) (*domain.Advertisement, error)
	RecordClick(ctx context.Context, adID string) (*domain.Advertisement, error)
}

type DefaultAdvertisementUsecase struct {
	uow     domain.UnitOfWork
	repos   domain.Repositories
	catalog *AdvertisementCatalog
	effects sideEffects
	nowFn   func() time.Time
}

func NewDefaultAdvertisementUsecase(
	uow domain.UnitOfWork,
	repos domain.Repositories,
	catalog *AdvertisementCatalog,
	events domain.EventPublisher,
	rejections domain.RejectionLog,
	m *metrics.SettlementMetrics,
) *DefaultAdvertisementUsecase {
	return &DefaultAdvertisementUsecase{
		uow:     uow,
		repos:   repos,
		catalog: catalog,
		effects: sideEffects{events: events, rejections: rejections, metrics: m},
		nowFn:   time.Now,
	}
}

func (uc *DefaultAdvertisementUsecase) ListPackages() []domain.AdvertisementPackage {
	return uc.catalog.List()
}

// PurchasePackage pays for the package from the available balance and starts
// the advertisement. Both happen in one unit of work; without funds nothing is stored.
func (uc *DefaultAdvertisementUsecase) PurchasePackage(ctx context.Context, input advertisementdto.PurchaseInput) (*domain.Advertisement, error) {
	now := uc.nowFn()
	ad, err := uc.purchase(ctx, input, now)
	if err != nil {
		uc.effects.rejected(ctx, "advertisement_purchase", input.SellerID, input.PackageID, uc.priceOf(input.PackageID), err, now)
		return nil, err
	}

	uc.effects.metrics.RecordDebit(string(domain.DebitReasonAdvertisement), ad.Cost)
	uc.effects.metrics.RecordAdPurchase(ad.PackageID)
	uc.effects.publish(ctx,
		domain.SettlementEvent{
			Type:        domain.EventWalletDebited,
			SellerID:    ad.SellerID,
			Amount:      ad.Cost,
			ReferenceID: ad.ID,
			Status:      string(domain.DebitReasonAdvertisement),
			OccurredAt:  now,
		},
		domain.SettlementEvent{
			Type:        domain.EventAdvertisementPurchased,
			SellerID:    ad.SellerID,
			Amount:      ad.Cost,
			ReferenceID: ad.ID,
			Status:      string(ad.Status),
			OccurredAt:  now,
		},
	)
	return ad, nil
}

func (uc *DefaultAdvertisementUsecase) purchase(ctx context.Context, input advertisementdto.PurchaseInput, now time.Time) (*domain.Advertisement, error) {
	if input.SellerID == "" || input.ProductID == "" {
		return nil, fmt.Errorf("%w: seller id and product id are required", domain.ErrInvalidInput)
	}
	pkg, err := uc.catalog.Get(input.PackageID)
	if err != nil {
		return nil, err
	}

	ad := domain.NewAdvertisement(uuid.NewString(), input.SellerID, input.ProductID, pkg, now)
	err = uc.uow.Do(ctx, input.SellerID, func(repos domain.Repositories) error {
		if _, _, err := debitAvailable(ctx, repos, input.SellerID, domain.DebitReasonAdvertisement, ledgerEntry{
			Type:            domain.TxAdSpend,
			Amount:          pkg.Price,
			AdvertisementID: ad.ID,
			Description:     fmt.Sprintf("%s package for product %s", pkg.ID, input.ProductID),
		}, now); err != nil {
			return err
		}
		return repos.Advertisements.CreateAdvertisement(ctx, ad)
	})
	if err != nil {
		return nil, err
	}
	return ad, nil
}

func (uc *DefaultAdvertisementUsecase) priceOf(packageID string) decimal.Decimal {
	if pkg, err := uc.catalog.Get(packageID); err == nil {
		return pkg.Price
	}
	return decimal.Zero
}

func (uc *DefaultAdvertisementUsecase) Pause(ctx context.Context, adID string) (*domain.Advertisement, error) {
	return uc.mutate(ctx, adID, (*domain.Advertisement).Pause)
}

func (uc *DefaultAdvertisementUsecase) Resume(ctx context.Context, adID string) (*domain.Advertisement, error) {
	return uc.mutate(ctx, adID, (*domain.Advertisement).Resume)
}

// Cancel stops the advertisement. The prepaid cost is not refunded.
func (uc *DefaultAdvertisementUsecase) Cancel(ctx context.Context, adID string) (*domain.Advertisement, error) {
	return uc.mutate(ctx, adID, (*domain.Advertisement).Cancel)
}

func (uc *DefaultAdvertisementUsecase) RecordImpression(ctx context.Context, adID string) (*domain.Advertisement, error) {
	return uc.mutate(ctx, adID, func(ad *domain.Advertisement, now time.Time) error {
		if !ad.Serving(now) {
			return fmt.Errorf("%w: advertisement %s is %s", domain.ErrInvalidStateTransition, ad.ID, ad.DisplayStatus(now))
		}
		ad.Impressions++
		ad.UpdatedAt = now
		return nil
	})
}

func (uc *DefaultAdvertisementUsecase) RecordClick(ctx context.Context, adID string) (*domain.Advertisement, error) {
	return uc.mutate(ctx, adID, func(ad *domain.Advertisement, now time.Time) error {
		if !ad.Serving(now) {
			return fmt.Errorf("%w: advertisement %s is %s", domain.ErrInvalidStateTransition, ad.ID, ad.DisplayStatus(now))
		}
		ad.Clicks++
		ad.UpdatedAt = now
		return nil
	})
}

func (uc *DefaultAdvertisementUsecase) mutate(ctx context.Context, adID string, change func(ad *domain.Advertisement, now time.Time) error) (*domain.Advertisement, error) {
	current, err := uc.repos.Advertisements.GetAdvertisementByID(ctx, adID)
	if err != nil {
		return nil, err
	}

	now := uc.nowFn()
	var ad *domain.Advertisement
	err = uc.uow.Do(ctx, current.SellerID, func(repos domain.Repositories) error {
		var err error
		ad, err = repos.Advertisements.GetAdvertisementByID(ctx, adID)
		if err != nil {
			return err
		}
		if err := change(ad, now); err != nil {
			return err
		}
		return repos.Advertisements.UpdateAdvertisement(ctx, ad)
	})
	if err != nil {
		return nil, err
	}
	return withDisplayStatus(ad, now), nil
}

// Delete removes the advertisement whatever its status.
func (uc *DefaultAdvertisementUsecase) Delete(ctx context.Context, adID string) error {
	current, err := uc.repos.Advertisements.GetAdvertisementByID(ctx, adID)
	if err != nil {
		return err
	}
	return uc.uow.Do(ctx, current.SellerID, func(repos domain.Repositories) error {
		return repos.Advertisements.DeleteAdvertisement(ctx, adID)
	})
}

func (uc *DefaultAdvertisementUsecase) Get(ctx context.Context, adID string) (*domain.Advertisement, error) {
	ad, err := uc.repos.Advertisements.GetAdvertisementByID(ctx, adID)
	if err != nil {
		return nil, err
	}
	return withDisplayStatus(ad, uc.nowFn()), nil
}

func (uc *DefaultAdvertisementUsecase) ListBySeller(ctx context.Context, sellerID string) ([]*domain.Advertisement, error) {
	ads, err := uc.repos.Advertisements.ListAdvertisementsBySellerID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	now := uc.nowFn()
	for i, ad := range ads {
		ads[i] = withDisplayStatus(ad, now)
	}
	return ads, nil
}

// withDisplayStatus replaces the stored status of a loaded copy with what readers see.
func withDisplayStatus(ad *domain.Advertisement, now time.Time) *domain.Advertisement {
	ad.Status = ad.DisplayStatus(now)
	return ad
}
