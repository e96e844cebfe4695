package usecase

import (
	"fmt"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultAdvertisementPackages is the catalog used when none is configured.
func DefaultAdvertisementPackages() []domain.AdvertisementPackage {
	return []domain.AdvertisementPackage{
		{
			ID:           "featured-7",
			Name:         "Featured product",
			Description:  "Product is pinned to the home page",
			DurationDays: 7,
			Price:        decimal.RequireFromString("149.90"),
			Features:     []string{"home_page", "badge"},
			Type:         domain.AdTypeFeatured,
		},
		{
			ID:           "top-list-14",
			Name:         "Top of search",
			Description:  "Product is listed first in search results",
			DurationDays: 14,
			Price:        decimal.RequireFromString("249.90"),
			Features:     []string{"search_top"},
			Type:         domain.AdTypeTopList,
		},
		{
			ID:           "category-30",
			Name:         "Category highlight",
			Description:  "Product is highlighted on its category page",
			DurationDays: 30,
			Price:        decimal.RequireFromString("399.90"),
			Features:     []string{"category_banner", "badge"},
			Type:         domain.AdTypeCategoryHighlight,
		},
	}
}

// AdvertisementCatalog is the static list of purchasable packages.
type AdvertisementCatalog struct {
	packages []domain.AdvertisementPackage
	byID     map[string]domain.AdvertisementPackage
}

func NewAdvertisementCatalog(packages []domain.AdvertisementPackage) (*AdvertisementCatalog, error) {
	if len(packages) == 0 {
		packages = DefaultAdvertisementPackages()
	}
	c := &AdvertisementCatalog{byID: make(map[string]domain.AdvertisementPackage, len(packages))}
	for _, pkg := range packages {
		if err := pkg.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[pkg.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate advertisement package %q", domain.ErrInvalidInput, pkg.ID)
		}
		c.byID[pkg.ID] = pkg
		c.packages = append(c.packages, pkg)
	}
	return c, nil
}

func (c *AdvertisementCatalog) List() []domain.AdvertisementPackage {
	out := make([]domain.AdvertisementPackage, len(c.packages))
	copy(out, c.packages)
	return out
}

func (c *AdvertisementCatalog) Get(packageID string) (domain.AdvertisementPackage, error) {
	pkg, ok := c.byID[packageID]
	if !ok {
		return domain.AdvertisementPackage{}, fmt.Errorf("advertisement package %s: %w", packageID, domain.ErrNotFound)
	}
	return pkg, nil
}
