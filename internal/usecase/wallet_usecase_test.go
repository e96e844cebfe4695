package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	walletdto "github.com/LavaJover/shvark-settlement-service/internal/usecase/dto/wallet"
)

func TestGetWalletCreatesEmptyWallet(t *testing.T) {
	env := newTestEnv(t)

	w := env.wallet(t, "seller-new")
	if w.SellerID != "seller-new" || w.ID == "" {
		t.Fatalf("wallet: %+v", w)
	}
	assertAmount(t, "balance", w.Balance, "0")

	again := env.wallet(t, "seller-new")
	if again.ID != w.ID {
		t.Fatalf("second read created another wallet: %s != %s", again.ID, w.ID)
	}

	if _, err := env.wallets.GetWallet(context.Background(), ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("empty seller id: got %v", err)
	}
}

func TestCreditLandsInPending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	out, err := env.wallets.Credit(ctx, walletdto.CreditInput{SellerID: "seller-1", Amount: dec("250.50"), Source: domain.CreditSourceOrder, OrderID: "order-9"})
	if err != nil {
		t.Fatalf("credit: %v", err)
	}
	if out.Transaction.Type != domain.TxEarning || out.Transaction.Status != domain.TxStatusPending {
		t.Fatalf("transaction: %+v", out.Transaction)
	}
	if out.Transaction.ClearsAt == nil || !out.Transaction.ClearsAt.Equal(env.clock.Now().Add(DefaultClearingDelay)) {
		t.Fatalf("clears at: %v", out.Transaction.ClearsAt)
	}

	w := env.wallet(t, "seller-1")
	assertAmount(t, "pending", w.PendingBalance, "250.50")
	assertAmount(t, "available", w.AvailableBalance, "0")
	assertAmount(t, "balance", w.Balance, "250.50")
	assertAmount(t, "earnings", w.TotalEarnings, "250.50")

	seller, err := env.sellers.GetSeller(ctx, "seller-1")
	if err != nil {
		t.Fatalf("seller: %v", err)
	}
	assertAmount(t, "seller earnings", seller.TotalEarnings, "250.50")
}

func TestCreditRejectsBadAmounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, amount := range []string{"0", "-5", "10.005"} {
		_, err := env.wallets.Credit(ctx, walletdto.CreditInput{SellerID: "seller-1", Amount: dec(amount)})
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("amount %s: got %v", amount, err)
		}
	}
}

func TestDebit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.fund(t, "seller-1", "100")

	out, err := env.wallets.Debit(ctx, walletdto.DebitInput{SellerID: "seller-1", Amount: dec("30"), Reason: domain.DebitReasonAdvertisement})
	if err != nil {
		t.Fatalf("debit: %v", err)
	}
	if out.Transaction.Type != domain.TxAdSpend {
		t.Fatalf("tx type: %s", out.Transaction.Type)
	}
	assertAmount(t, "available", out.Wallet.AvailableBalance, "70")
	assertAmount(t, "ads", out.Wallet.TotalSpentOnAds, "30")

	_, err = env.wallets.Debit(ctx, walletdto.DebitInput{SellerID: "seller-1", Amount: dec("70.01"), Reason: domain.DebitReasonAdvertisement})
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("overdraw: got %v", err)
	}
	_, err = env.wallets.Debit(ctx, walletdto.DebitInput{SellerID: "seller-1", Amount: dec("1"), Reason: "gift"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("unknown reason: got %v", err)
	}
	assertAmount(t, "available after failures", env.wallet(t, "seller-1").AvailableBalance, "70")
}

func TestDebitRefusesBareWithdrawalReservation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.fund(t, "seller-1", "100")

	_, err := env.wallets.Debit(ctx, walletdto.DebitInput{SellerID: "seller-1", Amount: dec("60"), Reason: domain.DebitReasonWithdrawal})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("withdrawal debit: got %v", err)
	}
	w := env.wallet(t, "seller-1")
	assertAmount(t, "available", w.AvailableBalance, "100")
	assertAmount(t, "reserved", w.ReservedBalance, "0")
}

func TestConcurrentDebitsNeverOverdraw(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.fund(t, "seller-1", "100")

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
	)
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.wallets.Debit(ctx, walletdto.DebitInput{SellerID: "seller-1", Amount: dec("10"), Reason: domain.DebitReasonAdvertisement})
			switch {
			case err == nil:
				succeeded.Add(1)
			case !errors.Is(err, domain.ErrInsufficientBalance):
				t.Errorf("debit: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := succeeded.Load(); got != 10 {
		t.Fatalf("successful debits: got %d, want 10", got)
	}
	w := env.wallet(t, "seller-1")
	assertAmount(t, "available", w.AvailableBalance, "0")
	assertAmount(t, "ads", w.TotalSpentOnAds, "100")
}

func TestListTransactionsNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := env.wallets.Credit(ctx, walletdto.CreditInput{SellerID: "seller-1", Amount: dec("10")}); err != nil {
			t.Fatalf("credit: %v", err)
		}
		env.clock.Advance(time.Minute)
	}

	page, err := env.wallets.ListTransactions(ctx, "seller-1", 1, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 3 || len(page.Transactions) != 2 {
		t.Fatalf("page: total %d, rows %d", page.Total, len(page.Transactions))
	}
	if !page.Transactions[0].CreatedAt.After(page.Transactions[1].CreatedAt) {
		t.Fatalf("not newest first")
	}

	page, err = env.wallets.ListTransactions(ctx, "seller-1", 3, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Transactions) != 0 {
		t.Fatalf("page past the end returned %d rows", len(page.Transactions))
	}
}
