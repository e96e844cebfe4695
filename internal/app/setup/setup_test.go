package setup

import (
	"context"
	"testing"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/config"
	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	walletdto "github.com/LavaJover/shvark-settlement-service/internal/usecase/dto/wallet"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

func memoryConfig() *config.SettlementConfig {
	return &config.SettlementConfig{
		Storage: config.Storage{Driver: "memory"},
		Settlement: config.Settlement{
			DefaultCommissionRate: 0.15,
			MinimumWithdrawal:     100,
			ClearingDelay:         48 * time.Hour,
		},
		Notifier: config.Notifier{Timeout: time.Second},
	}
}

func TestSettingsFromConfig(t *testing.T) {
	settings := SettingsFromConfig(memoryConfig().Settlement)
	if !settings.DefaultCommissionRate.Equal(decimal.RequireFromString("0.15")) {
		t.Fatalf("rate = %s", settings.DefaultCommissionRate)
	}
	if !settings.MinimumWithdrawal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("minimum = %s", settings.MinimumWithdrawal)
	}
	if settings.ClearingDelay != 48*time.Hour {
		t.Fatalf("delay = %s", settings.ClearingDelay)
	}
	if settings.IBANRule != domain.DefaultIBANRule {
		t.Fatalf("iban rule = %+v", settings.IBANRule)
	}
}

func TestPackagesFromConfig(t *testing.T) {
	packages, err := PackagesFromConfig([]config.AdPackage{
		{ID: "spotlight-3", Name: "Spotlight", DurationDays: 3, Price: "19.90", Type: "featured"},
	})
	if err != nil {
		t.Fatalf("packages: %v", err)
	}
	if len(packages) != 1 || !packages[0].Price.Equal(decimal.RequireFromString("19.9")) ||
		packages[0].Type != domain.AdTypeFeatured {
		t.Fatalf("unexpected packages: %+v", packages)
	}

	if _, err := PackagesFromConfig([]config.AdPackage{{ID: "x", Price: "cheap"}}); err == nil {
		t.Fatal("expected price parse error")
	}
	if packages, err := PackagesFromConfig(nil); err != nil || packages != nil {
		t.Fatalf("empty config = %v, %v", packages, err)
	}
}

func TestInitializeMemoryStack(t *testing.T) {
	ctx := context.Background()
	deps, err := InitializeDependencies(ctx, memoryConfig(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("dependencies: %v", err)
	}
	defer deps.Close()

	if err := deps.Ready(ctx); err != nil {
		t.Fatalf("ready: %v", err)
	}
	if deps.Subscriber != nil {
		t.Fatal("subscriber must stay nil without kafka")
	}

	ucs, err := InitializeUseCases(deps)
	if err != nil {
		t.Fatalf("usecases: %v", err)
	}
	if _, err := ucs.WalletUsecase.Credit(ctx, walletdto.CreditInput{
		SellerID: "seller-1",
		Amount:   decimal.NewFromInt(10),
		Source:   domain.CreditSourceAdjustment,
	}); err != nil {
		t.Fatalf("credit: %v", err)
	}
	w, err := ucs.WalletUsecase.GetWallet(ctx, "seller-1")
	if err != nil {
		t.Fatalf("wallet: %v", err)
	}
	if !w.PendingBalance.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("pending = %s", w.PendingBalance)
	}
}

func TestInitializeRejectsUnknownDriver(t *testing.T) {
	cfg := memoryConfig()
	cfg.Storage.Driver = "sqlite"
	if _, err := InitializeDependencies(context.Background(), cfg, prometheus.NewRegistry()); err == nil {
		t.Fatal("expected error")
	}
}
