package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	advertisementdto "github.com/LavaJover/shvark-settlement-service/internal/usecase/dto/advertisement"
)

func (e *testEnv) buyAd(t *testing.T, sellerID, packageID string) *domain.Advertisement {
	t.Helper()
	ad, err := e.ads.PurchasePackage(context.Background(), advertisementdto.PurchaseInput{
		SellerID:  sellerID,
		ProductID: "product-1",
		PackageID: packageID,
	})
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	return ad
}

func TestPurchasePackage(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, "seller-1", "100")

	ad := env.buyAd(t, "seller-1", "featured-7")
	if ad.Status != domain.AdActive || ad.Type != domain.AdTypeFeatured {
		t.Fatalf("ad: %+v", ad)
	}
	assertAmount(t, "budget", ad.Budget, "50")
	assertAmount(t, "spent", ad.Spent, "50")
	if !ad.EndDate.Equal(ad.StartDate.AddDate(0, 0, 7)) {
		t.Fatalf("end date: %v", ad.EndDate)
	}

	w := env.wallet(t, "seller-1")
	assertAmount(t, "available", w.AvailableBalance, "50")
	assertAmount(t, "ads", w.TotalSpentOnAds, "50")

	_, err := env.ads.PurchasePackage(context.Background(), advertisementdto.PurchaseInput{SellerID: "seller-1", ProductID: "p", PackageID: "gold"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown package: got %v", err)
	}
}

func TestAdvertisementLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.fund(t, "seller-1", "100")
	ad := env.buyAd(t, "seller-1", "featured-7")

	if _, err := env.ads.RecordImpression(ctx, ad.ID); err != nil {
		t.Fatalf("impression: %v", err)
	}
	got, err := env.ads.RecordClick(ctx, ad.ID)
	if err != nil {
		t.Fatalf("click: %v", err)
	}
	if got.Impressions != 1 || got.Clicks != 1 {
		t.Fatalf("counters: %d/%d", got.Impressions, got.Clicks)
	}

	paused, err := env.ads.Pause(ctx, ad.ID)
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	if paused.Status != domain.AdPaused {
		t.Fatalf("status: %s", paused.Status)
	}
	if _, err := env.ads.RecordClick(ctx, ad.ID); !errors.Is(err, domain.ErrInvalidStateTransition) {
		t.Fatalf("click while paused: got %v", err)
	}
	if _, err := env.ads.Pause(ctx, ad.ID); !errors.Is(err, domain.ErrInvalidStateTransition) {
		t.Fatalf("pause twice: got %v", err)
	}
	if _, err := env.ads.Resume(ctx, ad.ID); err != nil {
		t.Fatalf("resume: %v", err)
	}
	cancelled, err := env.ads.Cancel(ctx, ad.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != domain.AdCancelled {
		t.Fatalf("status: %s", cancelled.Status)
	}
	assertAmount(t, "no refund", env.wallet(t, "seller-1").AvailableBalance, "50")

	if err := env.ads.Delete(ctx, ad.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := env.ads.Get(ctx, ad.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("get deleted: got %v", err)
	}
}

func TestExpiredAdvertisementShowsCompleted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.fund(t, "seller-1", "100")
	ad := env.buyAd(t, "seller-1", "featured-7")

	env.clock.Advance(8 * 24 * time.Hour)

	got, err := env.ads.Get(ctx, ad.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.AdCompleted {
		t.Fatalf("display status: %s", got.Status)
	}
	if _, err := env.ads.Pause(ctx, ad.ID); !errors.Is(err, domain.ErrInvalidStateTransition) {
		t.Fatalf("pause expired: got %v", err)
	}
	if _, err := env.ads.RecordImpression(ctx, ad.ID); !errors.Is(err, domain.ErrInvalidStateTransition) {
		t.Fatalf("impression on expired: got %v", err)
	}

	stored, err := env.store.Repositories().Advertisements.GetAdvertisementByID(ctx, ad.ID)
	if err != nil {
		t.Fatalf("stored: %v", err)
	}
	if stored.Status != domain.AdActive {
		t.Fatalf("stored status changed to %s", stored.Status)
	}

	ads, err := env.ads.ListBySeller(ctx, "seller-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ads) != 1 || ads[0].Status != domain.AdCompleted {
		t.Fatalf("listed: %+v", ads)
	}
}

func TestDefaultCatalog(t *testing.T) {
	catalog, err := NewAdvertisementCatalog(nil)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if len(catalog.List()) != 3 {
		t.Fatalf("packages: %d", len(catalog.List()))
	}
	pkg, err := catalog.Get("featured-7")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	assertAmount(t, "price", pkg.Price, "149.90")

	dup := []domain.AdvertisementPackage{pkg, pkg}
	if _, err := NewAdvertisementCatalog(dup); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("duplicate: got %v", err)
	}
}
