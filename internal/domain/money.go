package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of fractional digits kept for currency amounts.
const MoneyPlaces = 2

// AmountFromFloat converts a wire float into a decimal amount. NaN and ±Inf are rejected.
func AmountFromFloat(v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, fmt.Errorf("%w: %v is not finite", ErrInvalidAmount, v)
	}
	return decimal.NewFromFloat(v), nil
}

// ValidatePositiveAmount accepts amounts > 0 with at most MoneyPlaces fractional digits.
func ValidatePositiveAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidAmount, amount.String())
	}
	if !amount.Equal(amount.Round(MoneyPlaces)) {
		return fmt.Errorf("%w: %s has more than %d decimal places", ErrInvalidAmount, amount.String(), MoneyPlaces)
	}
	return nil
}

func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPlaces)
}
