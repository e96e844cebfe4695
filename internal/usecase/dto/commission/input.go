package commissiondto

import "github.com/shopspring/decimal"

type CalculateInput struct {
	OrderID     string
	LineItemID  string
	SellerID    string
	OrderAmount decimal.Decimal
}
