package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	commissiondto "github.com/LavaJover/shvark-settlement-service/internal/usecase/dto/commission"
)

func TestCalculateCommission(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	input := commissiondto.CalculateInput{OrderID: "order-1", LineItemID: "line-1", SellerID: "seller-1", OrderAmount: dec("1000")}
	c, err := env.commissions.Calculate(ctx, input)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if c.Status != domain.CommissionCalculated {
		t.Fatalf("status: %s", c.Status)
	}
	assertAmount(t, "rate", c.CommissionRate, "0.10")
	assertAmount(t, "commission", c.CommissionAmount, "100")
	assertAmount(t, "net", env.commissions.NetEarning(c), "900")

	again, err := env.commissions.Calculate(ctx, input)
	if err != nil {
		t.Fatalf("repeat: %v", err)
	}
	if again.ID != c.ID {
		t.Fatalf("repeat created a new commission")
	}

	input.SellerID = "seller-2"
	if _, err := env.commissions.Calculate(ctx, input); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("line item of another seller: got %v", err)
	}
}

func TestCalculateCommissionEdgeAmounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	free, err := env.commissions.Calculate(ctx, commissiondto.CalculateInput{OrderID: "o", LineItemID: "free", SellerID: "s", OrderAmount: dec("0")})
	if err != nil {
		t.Fatalf("zero order: %v", err)
	}
	assertAmount(t, "zero commission", free.CommissionAmount, "0")

	rounded, err := env.commissions.Calculate(ctx, commissiondto.CalculateInput{OrderID: "o", LineItemID: "odd", SellerID: "s", OrderAmount: dec("19.99")})
	if err != nil {
		t.Fatalf("odd order: %v", err)
	}
	assertAmount(t, "rounded commission", rounded.CommissionAmount, "2")

	_, err = env.commissions.Calculate(ctx, commissiondto.CalculateInput{OrderID: "o", LineItemID: "neg", SellerID: "s", OrderAmount: dec("-1")})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("negative order: got %v", err)
	}
	_, err = env.commissions.Calculate(ctx, commissiondto.CalculateInput{OrderID: "o", LineItemID: "sub-cent", SellerID: "s", OrderAmount: dec("100.045")})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("sub-cent order: got %v", err)
	}
	if _, err := env.store.Repositories().Commissions.GetCommissionByLineItem(ctx, "o", "sub-cent"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("sub-cent commission stored: %v", err)
	}

	for _, c := range []*domain.Commission{free, rounded} {
		if !c.CommissionAmount.Equal(domain.CommissionAmount(c.OrderAmount, c.CommissionRate)) {
			t.Fatalf("stored commission %s does not match %s x %s", c.CommissionAmount, c.OrderAmount, c.CommissionRate)
		}
	}
}

func TestRateChangeKeepsStoredCommissions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.commissions.Calculate(ctx, commissiondto.CalculateInput{OrderID: "o1", LineItemID: "l1", SellerID: "s", OrderAmount: dec("200")})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if _, err := env.commissions.SetCommissionRate(ctx, "s", dec("0.15")); err != nil {
		t.Fatalf("set rate: %v", err)
	}
	second, err := env.commissions.Calculate(ctx, commissiondto.CalculateInput{OrderID: "o2", LineItemID: "l1", SellerID: "s", OrderAmount: dec("200")})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	assertAmount(t, "new commission", second.CommissionAmount, "30")

	page, err := env.commissions.ListBySeller(ctx, "s", 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, c := range page.Commissions {
		if c.ID == first.ID {
			assertAmount(t, "old rate", c.CommissionRate, "0.10")
			assertAmount(t, "old commission", c.CommissionAmount, "20")
		}
	}

	if _, err := env.commissions.SetCommissionRate(ctx, "s", dec("1.5")); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("rate above 1: got %v", err)
	}
}

func TestCommissionRatePrecision(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.commissions.SetCommissionRate(ctx, "s", dec("0.12345")); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("five-place rate: got %v", err)
	}
	if _, err := env.commissions.SetCommissionRate(ctx, "s", dec("0.1235")); err != nil {
		t.Fatalf("four-place rate: %v", err)
	}
	c, err := env.commissions.Calculate(ctx, commissiondto.CalculateInput{OrderID: "o1", LineItemID: "l1", SellerID: "s", OrderAmount: dec("1000")})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	assertAmount(t, "rate", c.CommissionRate, "0.1235")
	assertAmount(t, "commission", c.CommissionAmount, "123.50")
}

func TestCommissionPayAndCancel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c, err := env.commissions.Calculate(ctx, commissiondto.CalculateInput{OrderID: "o1", LineItemID: "l1", SellerID: "s", OrderAmount: dec("500")})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	paid, err := env.commissions.Pay(ctx, c.ID)
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if paid.Status != domain.CommissionPaid || paid.PaidAt == nil {
		t.Fatalf("paid: %+v", paid)
	}
	seller, err := env.sellers.GetSeller(ctx, "s")
	if err != nil {
		t.Fatalf("seller: %v", err)
	}
	assertAmount(t, "commission paid", seller.TotalCommissionPaid, "50")

	if _, err := env.commissions.Cancel(ctx, c.ID); !errors.Is(err, domain.ErrInvalidStateTransition) {
		t.Fatalf("cancel paid: got %v", err)
	}
	if _, err := env.commissions.Pay(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("pay unknown: got %v", err)
	}

	other, err := env.commissions.Calculate(ctx, commissiondto.CalculateInput{OrderID: "o2", LineItemID: "l1", SellerID: "s", OrderAmount: dec("10")})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	cancelled, err := env.commissions.Cancel(ctx, other.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != domain.CommissionCancelled {
		t.Fatalf("status: %s", cancelled.Status)
	}
}
