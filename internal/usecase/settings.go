package usecase

import (
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/shopspring/decimal"
)

// Settings are the business knobs shared by the settlement usecases.
type Settings struct {
	DefaultCommissionRate decimal.Decimal
	MinimumWithdrawal     decimal.Decimal
	ClearingDelay         time.Duration
	SettleBatchSize       int
	IBANRule              domain.IBANRule
}

const DefaultClearingDelay = 7 * 24 * time.Hour

func DefaultSettings() Settings {
	return Settings{
		DefaultCommissionRate: domain.DefaultCommissionRate,
		MinimumWithdrawal:     domain.DefaultMinimumWithdrawal,
		ClearingDelay:         DefaultClearingDelay,
		SettleBatchSize:       500,
		IBANRule:              domain.DefaultIBANRule,
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.ClearingDelay <= 0 {
		s.ClearingDelay = d.ClearingDelay
	}
	if s.SettleBatchSize <= 0 {
		s.SettleBatchSize = d.SettleBatchSize
	}
	if s.IBANRule.CountryPrefix == "" || s.IBANRule.Length == 0 {
		s.IBANRule = d.IBANRule
	}
	return s
}
