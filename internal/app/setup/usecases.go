package setup

import (
	"fmt"

	"github.com/LavaJover/shvark-settlement-service/internal/config"
	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/LavaJover/shvark-settlement-service/internal/usecase"
	"github.com/shopspring/decimal"
)

type UseCases struct {
	WalletUsecase        usecase.WalletUsecase
	CommissionUsecase    usecase.CommissionUsecase
	OrderEventUsecase    usecase.OrderEventUsecase
	SettlementUsecase    usecase.SettlementUsecase
	WithdrawalUsecase    usecase.WithdrawalUsecase
	AdvertisementUsecase usecase.AdvertisementUsecase
	SellerUsecase        usecase.SellerUsecase
}

func InitializeUseCases(deps *Dependencies) (*UseCases, error) {
	settings := SettingsFromConfig(deps.Config.Settlement)

	packages, err := PackagesFromConfig(deps.Config.Advertisement.Packages)
	if err != nil {
		return nil, fmt.Errorf("advertisement packages: %w", err)
	}
	catalog, err := usecase.NewAdvertisementCatalog(packages)
	if err != nil {
		return nil, fmt.Errorf("advertisement catalog: %w", err)
	}

	uow, repos := deps.UnitOfWork, deps.Repositories
	return &UseCases{
		WalletUsecase:        usecase.NewDefaultWalletUsecase(uow, repos, settings, deps.Events, deps.Rejections, deps.Metrics),
		CommissionUsecase:    usecase.NewDefaultCommissionUsecase(uow, repos, settings, deps.Events, deps.Metrics),
		OrderEventUsecase:    usecase.NewDefaultOrderEventUsecase(uow, settings, deps.Events, deps.Metrics),
		SettlementUsecase:    usecase.NewDefaultSettlementUsecase(uow, repos, settings, deps.Events, deps.Metrics),
		WithdrawalUsecase:    usecase.NewDefaultWithdrawalUsecase(uow, repos, settings, deps.Events, deps.Rejections, deps.Notifier, deps.Metrics),
		AdvertisementUsecase: usecase.NewDefaultAdvertisementUsecase(uow, repos, catalog, deps.Events, deps.Rejections, deps.Metrics),
		SellerUsecase:        usecase.NewDefaultSellerUsecase(uow, repos, settings),
	}, nil
}

// SettingsFromConfig converts the settlement section; zero values keep the defaults.
func SettingsFromConfig(cfg config.Settlement) usecase.Settings {
	settings := usecase.DefaultSettings()
	if cfg.DefaultCommissionRate > 0 {
		settings.DefaultCommissionRate = decimal.NewFromFloat(cfg.DefaultCommissionRate).Round(domain.RatePlaces)
	}
	if cfg.MinimumWithdrawal > 0 {
		settings.MinimumWithdrawal = decimal.NewFromFloat(cfg.MinimumWithdrawal)
	}
	if cfg.ClearingDelay > 0 {
		settings.ClearingDelay = cfg.ClearingDelay
	}
	if cfg.SettleBatchSize > 0 {
		settings.SettleBatchSize = cfg.SettleBatchSize
	}
	if cfg.IBANCountry != "" && cfg.IBANLength > 0 {
		settings.IBANRule = domain.IBANRule{CountryPrefix: cfg.IBANCountry, Length: cfg.IBANLength}
	}
	return settings
}

// PackagesFromConfig returns nil for an empty list so the built-in catalog applies.
func PackagesFromConfig(cfg []config.AdPackage) ([]domain.AdvertisementPackage, error) {
	if len(cfg) == 0 {
		return nil, nil
	}
	packages := make([]domain.AdvertisementPackage, 0, len(cfg))
	for _, p := range cfg {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, fmt.Errorf("package %q price %q: %w", p.ID, p.Price, err)
		}
		packages = append(packages, domain.AdvertisementPackage{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			DurationDays: p.DurationDays,
			Price:        price,
			Features:     p.Features,
			Type:         domain.AdType(p.Type),
		})
	}
	return packages, nil
}
