package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AdvertisementModel struct {
	ID           string `gorm:"primaryKey;type:uuid"`
	SellerID     string `gorm:"not null;index"`
	ProductID    string `gorm:"not null"`
	PackageID    string `gorm:"not null"`
	Type         string
	Cost         decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	DurationDays int
	StartDate    time.Time
	EndDate      time.Time
	Status       string          `gorm:"not null"`
	Budget       decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Spent        decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Impressions  int64
	Clicks       int64
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

func (AdvertisementModel) TableName() string { return "advertisements" }
