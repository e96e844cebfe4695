package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/shopspring/decimal"
)

func TestSlogRejectionLoggerWritesWarning(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogRejectionLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	err := l.LogRejected(context.Background(), domain.RejectedOperation{
		SellerID:  "seller-1",
		Operation: "withdrawal",
		Reason:    "insufficient_balance",
		Amount:    decimal.RequireFromString("60.00"),
	})
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"level=WARN", "seller_id=seller-1", "reason=insufficient_balance", "amount=60"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
}
