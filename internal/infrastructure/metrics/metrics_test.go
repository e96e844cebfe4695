package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		var sum float64
		for _, m := range f.GetMetric() {
			sum += m.GetCounter().GetValue()
		}
		return sum
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestRecordDebit(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSettlementMetrics(reg)

	m.RecordDebit("withdrawal", decimal.RequireFromString("60"))
	m.RecordDebit("withdrawal", decimal.RequireFromString("15.5"))

	if got := counterValue(t, reg, "wallet_debits_total"); got != 2 {
		t.Fatalf("expected 2 debits, got %v", got)
	}
	if got := counterValue(t, reg, "wallet_debits_amount_total"); got != 75.5 {
		t.Fatalf("expected 75.5, got %v", got)
	}
}

func TestNilMetricsAreNoop(t *testing.T) {
	var m *SettlementMetrics
	m.RecordCredit("order", decimal.NewFromInt(1))
	m.RecordRejected("withdrawal", "insufficient_balance")
	m.RecordDuration("withdrawal", 0.1)
}
