package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/memory"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/metrics"
	walletdto "github.com/LavaJover/shvark-settlement-service/internal/usecase/dto/wallet"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

const testIBAN = "TR330006100519786457841326"

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type rejectionRecorder struct {
	mu  sync.Mutex
	ops []domain.RejectedOperation
}

func (r *rejectionRecorder) LogRejected(_ context.Context, op domain.RejectedOperation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
	return nil
}

type notifierRecorder struct {
	mu       sync.Mutex
	statuses []domain.WithdrawalStatus
}

func (n *notifierRecorder) NotifyWithdrawal(request *domain.WithdrawalRequest) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statuses = append(n.statuses, request.Status)
}

type testEnv struct {
	store       *memory.Store
	clock       *fakeClock
	events      *memory.EventRecorder
	rejections  *rejectionRecorder
	notifier    *notifierRecorder
	wallets     *DefaultWalletUsecase
	commissions *DefaultCommissionUsecase
	orders      *DefaultOrderEventUsecase
	settlement  *DefaultSettlementUsecase
	withdrawals *DefaultWithdrawalUsecase
	ads         *DefaultAdvertisementUsecase
	sellers     *DefaultSellerUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	repos := store.Repositories()
	clock := &fakeClock{now: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
	events := memory.NewEventRecorder()
	rejections := &rejectionRecorder{}
	notifier := &notifierRecorder{}
	m := metrics.NewSettlementMetrics(prometheus.NewRegistry())
	settings := DefaultSettings()

	catalog, err := NewAdvertisementCatalog([]domain.AdvertisementPackage{
		{ID: "featured-7", Name: "Featured", DurationDays: 7, Price: decimal.NewFromInt(50), Type: domain.AdTypeFeatured},
		{ID: "top-list-14", Name: "Top list", DurationDays: 14, Price: decimal.NewFromInt(30), Type: domain.AdTypeTopList},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	env := &testEnv{
		store:       store,
		clock:       clock,
		events:      events,
		rejections:  rejections,
		notifier:    notifier,
		wallets:     NewDefaultWalletUsecase(store, repos, settings, events, rejections, m),
		commissions: NewDefaultCommissionUsecase(store, repos, settings, events, m),
		orders:      NewDefaultOrderEventUsecase(store, settings, events, m),
		settlement:  NewDefaultSettlementUsecase(store, repos, settings, events, m),
		withdrawals: NewDefaultWithdrawalUsecase(store, repos, settings, events, rejections, notifier, m),
		ads:         NewDefaultAdvertisementUsecase(store, repos, catalog, events, rejections, m),
		sellers:     NewDefaultSellerUsecase(store, repos, settings),
	}
	env.wallets.nowFn = clock.Now
	env.commissions.nowFn = clock.Now
	env.orders.nowFn = clock.Now
	env.withdrawals.nowFn = clock.Now
	env.ads.nowFn = clock.Now
	env.sellers.nowFn = clock.Now
	return env
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// fund credits amount and clears it so it is available right away.
func (e *testEnv) fund(t *testing.T, sellerID, amount string) {
	t.Helper()
	ctx := context.Background()
	if _, err := e.wallets.Credit(ctx, walletdto.CreditInput{
		SellerID: sellerID,
		Amount:   dec(amount),
		Source:   domain.CreditSourceAdjustment,
	}); err != nil {
		t.Fatalf("credit: %v", err)
	}
	if _, err := e.settlement.SettleMatured(ctx, e.clock.Now().Add(DefaultClearingDelay)); err != nil {
		t.Fatalf("settle: %v", err)
	}
}

func (e *testEnv) wallet(t *testing.T, sellerID string) *domain.SellerWallet {
	t.Helper()
	w, err := e.wallets.GetWallet(context.Background(), sellerID)
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	if err := w.CheckInvariants(); err != nil {
		t.Fatalf("invariants: %v", err)
	}
	return w
}

func assertAmount(t *testing.T, what string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Fatalf("%s: got %s, want %s", what, got, want)
	}
}

func (e *testEnv) saveBankAccount(t *testing.T, sellerID string) {
	t.Helper()
	_, err := e.sellers.UpdateBankAccount(context.Background(), sellerID, domain.BankAccount{
		BankName:      "Ziraat Bankası",
		IBAN:          testIBAN,
		AccountHolder: "Ayşe Yılmaz",
	})
	if err != nil {
		t.Fatalf("save bank account: %v", err)
	}
}
