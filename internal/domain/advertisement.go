package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AdType is shared by the package catalog and purchased advertisements.
type AdType string

const (
	AdTypeFeatured          AdType = "featured"
	AdTypeTopList           AdType = "top_list"
	AdTypeCategoryHighlight AdType = "category_highlight"
)

func (t AdType) Valid() bool {
	switch t {
	case AdTypeFeatured, AdTypeTopList, AdTypeCategoryHighlight:
		return true
	}
	return false
}

type AdStatus string

const (
	AdActive    AdStatus = "active"
	AdPaused    AdStatus = "paused"
	AdExpired   AdStatus = "expired"
	AdCancelled AdStatus = "cancelled"
	// AdCompleted is only ever displayed, never stored.
	AdCompleted AdStatus = "completed"
)

type AdvertisementPackage struct {
	ID           string
	Name         string
	Description  string
	DurationDays int
	Price        decimal.Decimal
	Features     []string
	Type         AdType
}

func (p AdvertisementPackage) Validate() error {
	if p.ID == "" || p.DurationDays <= 0 || !p.Type.Valid() {
		return fmt.Errorf("%w: advertisement package %q", ErrInvalidInput, p.ID)
	}
	return ValidatePositiveAmount(p.Price)
}

type Advertisement struct {
	ID           string
	SellerID     string
	ProductID    string
	PackageID    string
	Type         AdType
	Cost         decimal.Decimal
	DurationDays int
	StartDate    time.Time
	EndDate      time.Time
	Status       AdStatus
	Budget       decimal.Decimal
	Spent        decimal.Decimal
	Impressions  int64
	Clicks       int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewAdvertisement starts an active, prepaid placement for pkg at now.
func NewAdvertisement(id, sellerID, productID string, pkg AdvertisementPackage, now time.Time) *Advertisement {
	return &Advertisement{
		ID:           id,
		SellerID:     sellerID,
		ProductID:    productID,
		PackageID:    pkg.ID,
		Type:         pkg.Type,
		Cost:         pkg.Price,
		DurationDays: pkg.DurationDays,
		StartDate:    now,
		EndDate:      now.AddDate(0, 0, pkg.DurationDays),
		Status:       AdActive,
		Budget:       pkg.Price,
		Spent:        pkg.Price,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (a *Advertisement) Expired(now time.Time) bool {
	return a.EndDate.Before(now)
}

// DisplayStatus is the status shown to readers. Stored status is left alone.
func (a *Advertisement) DisplayStatus(now time.Time) AdStatus {
	if a.Status == AdActive && a.Expired(now) {
		return AdCompleted
	}
	return a.Status
}

func (a *Advertisement) Pause(now time.Time) error {
	if a.Status != AdActive || a.Expired(now) {
		return fmt.Errorf("%w: cannot pause advertisement %s in status %s", ErrInvalidStateTransition, a.ID, a.DisplayStatus(now))
	}
	a.Status = AdPaused
	a.UpdatedAt = now
	return nil
}

func (a *Advertisement) Resume(now time.Time) error {
	if a.Status != AdPaused || a.Expired(now) {
		return fmt.Errorf("%w: cannot resume advertisement %s in status %s", ErrInvalidStateTransition, a.ID, a.DisplayStatus(now))
	}
	a.Status = AdActive
	a.UpdatedAt = now
	return nil
}

func (a *Advertisement) Cancel(now time.Time) error {
	if a.Status != AdActive && a.Status != AdPaused {
		return fmt.Errorf("%w: cannot cancel advertisement %s in status %s", ErrInvalidStateTransition, a.ID, a.Status)
	}
	a.Status = AdCancelled
	a.UpdatedAt = now
	return nil
}

// Serving reports whether impressions and clicks may be counted.
func (a *Advertisement) Serving(now time.Time) bool {
	return a.DisplayStatus(now) == AdActive
}
