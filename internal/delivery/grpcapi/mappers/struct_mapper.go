package mappers

import (
	"fmt"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/structpb"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(domain.MoneyPlaces)
}

func timestamp(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func ToStruct(m map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	return s, nil
}

// String returns the string field or "" when it is missing.
func String(in *structpb.Struct, field string) string {
	v, ok := in.GetFields()[field]
	if !ok {
		return ""
	}
	return v.GetStringValue()
}

// Decimal reads an amount sent either as a decimal string or as a JSON number.
func Decimal(in *structpb.Struct, field string) (decimal.Decimal, error) {
	v, ok := in.GetFields()[field]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, field)
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		d, err := decimal.NewFromString(kind.StringValue)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %s %q is not a number", domain.ErrInvalidAmount, field, kind.StringValue)
		}
		return d, nil
	case *structpb.Value_NumberValue:
		return domain.AmountFromFloat(kind.NumberValue)
	}
	return decimal.Zero, fmt.Errorf("%w: %s must be a string or a number", domain.ErrInvalidInput, field)
}

func Time(in *structpb.Struct, field string) (time.Time, bool, error) {
	raw := String(in, field)
	if raw == "" {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %s must be RFC3339", domain.ErrInvalidInput, field)
	}
	return t, true, nil
}

func FromCommission(c *domain.Commission) map[string]any {
	return map[string]any{
		"commission_id":     c.ID,
		"order_id":          c.OrderID,
		"line_item_id":      c.LineItemID,
		"seller_id":         c.SellerID,
		"order_amount":      money(c.OrderAmount),
		"commission_rate":   c.CommissionRate.String(),
		"commission_amount": money(c.CommissionAmount),
		"net_earning":       money(domain.NetEarning(c)),
		"status":            string(c.Status),
		"paid_at":           timestamp(c.PaidAt),
	}
}

func FromSeller(s *domain.Seller) map[string]any {
	return map[string]any{
		"seller_id":             s.ID,
		"commission_rate":       s.CommissionRate.String(),
		"total_earnings":        money(s.TotalEarnings),
		"total_commission_paid": money(s.TotalCommissionPaid),
	}
}

func FromWallet(w *domain.SellerWallet) map[string]any {
	return map[string]any{
		"wallet_id":          w.ID,
		"seller_id":          w.SellerID,
		"balance":            money(w.Balance),
		"available_balance":  money(w.AvailableBalance),
		"pending_balance":    money(w.PendingBalance),
		"reserved_balance":   money(w.ReservedBalance),
		"total_earnings":     money(w.TotalEarnings),
		"total_withdrawn":    money(w.TotalWithdrawn),
		"total_spent_on_ads": money(w.TotalSpentOnAds),
		"last_updated":       timestamp(&w.LastUpdated),
	}
}

func FromTransaction(tx *domain.Transaction) map[string]any {
	return map[string]any{
		"transaction_id": tx.ID,
		"type":           string(tx.Type),
		"amount":         money(tx.Amount),
		"status":         string(tx.Status),
		"clears_at":      timestamp(tx.ClearsAt),
		"description":    tx.Description,
	}
}

func FromWithdrawal(w *domain.WithdrawalRequest) map[string]any {
	return map[string]any{
		"withdrawal_id":  w.ID,
		"reference":      w.Reference,
		"seller_id":      w.SellerID,
		"amount":         money(w.Amount),
		"status":         string(w.Status),
		"iban":           w.BankAccount.IBAN,
		"bank_name":      w.BankAccount.BankName,
		"admin_note":     w.AdminNote,
		"transaction_id": w.TransactionID,
		"processed_at":   timestamp(w.ProcessedAt),
	}
}
