package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	walletResponse "github.com/LavaJover/shvark-settlement-service/internal/delivery/http/dto/wallet/response"
	withdrawalResponse "github.com/LavaJover/shvark-settlement-service/internal/delivery/http/dto/withdrawal/response"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/memory"
	"github.com/LavaJover/shvark-settlement-service/internal/usecase"
	walletdto "github.com/LavaJover/shvark-settlement-service/internal/usecase/dto/wallet"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

type testServer struct {
	router     *gin.Engine
	wallets    *usecase.DefaultWalletUsecase
	settlement *usecase.DefaultSettlementUsecase
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	repos := store.Repositories()
	events := memory.NewEventRecorder()
	settings := usecase.DefaultSettings()
	catalog, err := usecase.NewAdvertisementCatalog(nil)
	if err != nil {
		t.Fatal(err)
	}

	wallets := usecase.NewDefaultWalletUsecase(store, repos, settings, events, nil, nil)
	h := NewHTTPSettlementHandler(
		wallets,
		usecase.NewDefaultCommissionUsecase(store, repos, settings, events, nil),
		usecase.NewDefaultWithdrawalUsecase(store, repos, settings, events, nil, nil, nil),
		usecase.NewDefaultAdvertisementUsecase(store, repos, catalog, events, nil, nil),
		usecase.NewDefaultSellerUsecase(store, repos, settings),
	)
	router := NewRouter(h, RouterOptions{
		Idempotency:    memory.NewIdempotencyStore(),
		IdempotencyTTL: time.Hour,
		Gatherer:       prometheus.NewRegistry(),
	})
	return &testServer{
		router:     router,
		wallets:    wallets,
		settlement: usecase.NewDefaultSettlementUsecase(store, repos, settings, events, nil),
	}
}

func (s *testServer) fund(t *testing.T, sellerID, amount string) {
	t.Helper()
	ctx := context.Background()
	if _, err := s.wallets.Credit(ctx, walletdto.CreditInput{SellerID: sellerID, Amount: decimal.RequireFromString(amount)}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.settlement.SettleMatured(ctx, time.Now().Add(usecase.DefaultClearingDelay+time.Minute)); err != nil {
		t.Fatal(err)
	}
}

func (s *testServer) do(method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

const withdrawalBody = `{"amount":"60.00","bankAccount":{"bankName":"Garanti BBVA","iban":"TR33 0006 1005 1978 6457 8413 26","accountHolder":"Mehmet Kaya"}}`

func TestGetWalletCreatesEmptyWallet(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/v1/sellers/seller-1/wallet", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	w := decode[walletResponse.WalletResponse](t, rec)
	if w.SellerID != "seller-1" || w.AvailableBalance != "0.00" {
		t.Fatalf("wallet: %+v", w)
	}
}

func TestCreateWithdrawalIsIdempotent(t *testing.T) {
	s := newTestServer(t)
	s.fund(t, "seller-1", "100")
	key := map[string]string{IdempotencyKeyHeader: "req-1"}

	first := s.do(http.MethodPost, "/v1/sellers/seller-1/withdrawals", withdrawalBody, key)
	if first.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", first.Code, first.Body)
	}
	created := decode[withdrawalResponse.WithdrawalResponse](t, first)
	if created.Amount != "60.00" || created.Status != "pending" {
		t.Fatalf("withdrawal: %+v", created)
	}

	replay := s.do(http.MethodPost, "/v1/sellers/seller-1/withdrawals", withdrawalBody, key)
	if replay.Code != http.StatusCreated || replay.Header().Get(IdempotentReplayHeader) != "true" {
		t.Fatalf("replay status %d headers %v", replay.Code, replay.Header())
	}
	if decode[withdrawalResponse.WithdrawalResponse](t, replay).WithdrawalID != created.WithdrawalID {
		t.Fatalf("replay returned another withdrawal")
	}

	conflict := s.do(http.MethodPost, "/v1/sellers/seller-1/withdrawals", `{"amount":"70.00"}`, key)
	if conflict.Code != http.StatusConflict {
		t.Fatalf("reused key status %d", conflict.Code)
	}

	w := decode[walletResponse.WalletResponse](t, s.do(http.MethodGet, "/v1/sellers/seller-1/wallet", "", nil))
	if w.AvailableBalance != "40.00" || w.ReservedBalance != "60.00" {
		t.Fatalf("wallet after replays: %+v", w)
	}

	list := decode[withdrawalResponse.WithdrawalsResponse](t, s.do(http.MethodGet, "/v1/sellers/seller-1/withdrawals", "", nil))
	if len(list.Withdrawals) != 1 {
		t.Fatalf("withdrawals: %d", len(list.Withdrawals))
	}
}

func TestErrorMapping(t *testing.T) {
	s := newTestServer(t)
	s.fund(t, "seller-1", "100")

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"below minimum", http.MethodPost, "/v1/sellers/seller-1/withdrawals", `{"amount":"10"}`, http.StatusBadRequest},
		{"bad json", http.MethodPost, "/v1/sellers/seller-1/withdrawals", `{"amount":`, http.StatusBadRequest},
		{"insufficient", http.MethodPost, "/v1/sellers/seller-1/withdrawals", `{"amount":"500","bankAccount":{"bankName":"X","iban":"TR330006100519786457841326"}}`, http.StatusConflict},
		{"ad too expensive", http.MethodPost, "/v1/sellers/seller-1/advertisements", `{"productId":"p1","packageId":"category-30"}`, http.StatusConflict},
		{"unknown package", http.MethodPost, "/v1/sellers/seller-1/advertisements", `{"productId":"p1","packageId":"gold"}`, http.StatusNotFound},
		{"unknown withdrawal", http.MethodGet, "/v1/withdrawals/nope", "", http.StatusNotFound},
		{"no bank account", http.MethodGet, "/v1/sellers/seller-1/bank-account", "", http.StatusNotFound},
		{"bad iban", http.MethodPut, "/v1/sellers/seller-1/bank-account", `{"bankName":"X","iban":"TR00"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(tt.method, tt.path, tt.body, nil)
			if rec.Code != tt.want {
				t.Fatalf("status %d, want %d: %s", rec.Code, tt.want, rec.Body)
			}
			if e := decode[walletResponse.ErrorResponse](t, rec); e.Error == "" || e.Success {
				t.Fatalf("error body: %+v", e)
			}
		})
	}
}

func TestAdvertisementRoutes(t *testing.T) {
	s := newTestServer(t)
	s.fund(t, "seller-1", "200")

	rec := s.do(http.MethodPost, "/v1/sellers/seller-1/advertisements", `{"productId":"p1","packageId":"featured-7"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("purchase %d: %s", rec.Code, rec.Body)
	}
	var ad struct {
		AdvertisementID string `json:"advertisementId"`
		Status          string `json:"status"`
		Cost            string `json:"cost"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &ad); err != nil {
		t.Fatal(err)
	}
	if ad.Cost != "149.90" || ad.Status != "active" {
		t.Fatalf("ad: %+v", ad)
	}

	s.do(http.MethodPost, "/v1/advertisements/"+ad.AdvertisementID+"/impressions", "", nil)
	if rec := s.do(http.MethodPost, "/v1/advertisements/"+ad.AdvertisementID+"/clicks", "", nil); !strings.Contains(rec.Body.String(), `"clicks":1`) {
		t.Fatalf("click: %d %s", rec.Code, rec.Body)
	}
	if rec := s.do(http.MethodGet, "/v1/advertisements/"+ad.AdvertisementID, "", nil); !strings.Contains(rec.Body.String(), `"impressions":1`) {
		t.Fatalf("get: %d %s", rec.Code, rec.Body)
	}

	for _, step := range []struct{ action, status string }{{"pause", "paused"}, {"resume", "active"}, {"cancel", "cancelled"}} {
		rec := s.do(http.MethodPost, "/v1/advertisements/"+ad.AdvertisementID+"/"+step.action, "", nil)
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"`+step.status+`"`) {
			t.Fatalf("%s: %d %s", step.action, rec.Code, rec.Body)
		}
	}
	if rec := s.do(http.MethodPost, "/v1/advertisements/"+ad.AdvertisementID+"/pause", "", nil); rec.Code != http.StatusConflict {
		t.Fatalf("pause cancelled: %d", rec.Code)
	}
	if rec := s.do(http.MethodDelete, "/v1/advertisements/"+ad.AdvertisementID, "", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", rec.Code)
	}

	w := decode[walletResponse.WalletResponse](t, s.do(http.MethodGet, "/v1/sellers/seller-1/wallet", "", nil))
	if w.AvailableBalance != "50.10" || w.TotalSpentOnAds != "149.90" {
		t.Fatalf("wallet: %+v", w)
	}
}

func TestBankAccountAndPackages(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPut, "/v1/sellers/seller-1/bank-account", `{"bankName":"Akbank","iban":"tr33 0006 1005 1978 6457 8413 26","accountHolder":"Ali Demir"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("put: %d %s", rec.Code, rec.Body)
	}
	got := decode[withdrawalResponse.BankAccountResponse](t, s.do(http.MethodGet, "/v1/sellers/seller-1/bank-account", "", nil))
	if got.IBAN != "TR330006100519786457841326" {
		t.Fatalf("iban: %q", got.IBAN)
	}

	rec = s.do(http.MethodGet, "/v1/advertisement-packages", "", nil)
	if rec.Code != http.StatusOK || strings.Count(rec.Body.String(), `"packageId"`) != 3 {
		t.Fatalf("packages: %d %s", rec.Code, rec.Body)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)
	if rec := s.do(http.MethodGet, "/healthz", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("healthz: %d", rec.Code)
	}
	if rec := s.do(http.MethodGet, "/metrics", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("metrics: %d", rec.Code)
	}
}
