package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// SettlementMetrics содержит метрики кошельков, выводов и рекламы
type SettlementMetrics struct {
	// Начисления и списания
	WalletCreditsTotal       *prometheus.CounterVec
	WalletCreditsAmountTotal *prometheus.CounterVec
	WalletDebitsTotal        *prometheus.CounterVec
	WalletDebitsAmountTotal  *prometheus.CounterVec
	SettledAmountTotal       prometheus.Counter

	// Комиссии
	CommissionsCalculatedTotal prometheus.Counter
	CommissionAmountTotal      prometheus.Counter

	// Выводы по статусам
	WithdrawalsTotal       *prometheus.CounterVec
	WithdrawalsAmountTotal *prometheus.CounterVec

	// Реклама
	AdPurchasesTotal *prometheus.CounterVec

	// Отклоненные операции (недостаточно средств, валидация)
	RejectedOperationsTotal *prometheus.CounterVec

	// Время выполнения unit of work
	OperationDuration *prometheus.HistogramVec
}

// NewSettlementMetrics регистрирует метрики в reg
func NewSettlementMetrics(reg prometheus.Registerer) *SettlementMetrics {
	factory := promauto.With(reg)
	return &SettlementMetrics{
		WalletCreditsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_credits_total",
				Help: "Количество начислений в кошельки продавцов",
			},
			[]string{"source"},
		),
		WalletCreditsAmountTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_credits_amount_total",
				Help: "Сумма начислений в кошельки продавцов",
			},
			[]string{"source"},
		),
		WalletDebitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_debits_total",
				Help: "Количество списаний с доступного баланса",
			},
			[]string{"reason"},
		),
		WalletDebitsAmountTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_debits_amount_total",
				Help: "Сумма списаний с доступного баланса",
			},
			[]string{"reason"},
		),
		SettledAmountTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "wallet_settled_amount_total",
				Help: "Сумма, переведенная из ожидания в доступный баланс",
			},
		),
		CommissionsCalculatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "commissions_calculated_total",
				Help: "Количество рассчитанных комиссий",
			},
		),
		CommissionAmountTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "commission_amount_total",
				Help: "Сумма рассчитанных комиссий платформы",
			},
		),
		WithdrawalsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "withdrawals_total",
				Help: "Количество заявок на вывод по статусам",
			},
			[]string{"status"},
		),
		WithdrawalsAmountTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "withdrawals_amount_total",
				Help: "Сумма заявок на вывод по статусам",
			},
			[]string{"status"},
		),
		AdPurchasesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "advertisement_purchases_total",
				Help: "Количество купленных рекламных пакетов",
			},
			[]string{"package_id"},
		),
		RejectedOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settlement_rejected_operations_total",
				Help: "Количество отклоненных операций",
			},
			[]string{"operation", "reason"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "settlement_operation_duration_seconds",
				Help:    "Время выполнения операции с кошельком",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

func amount(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// Методы ниже допускают nil получателя, чтобы метрики были необязательными

func (m *SettlementMetrics) RecordCredit(source string, value decimal.Decimal) {
	if m == nil {
		return
	}
	m.WalletCreditsTotal.WithLabelValues(source).Inc()
	m.WalletCreditsAmountTotal.WithLabelValues(source).Add(amount(value))
}

func (m *SettlementMetrics) RecordDebit(reason string, value decimal.Decimal) {
	if m == nil {
		return
	}
	m.WalletDebitsTotal.WithLabelValues(reason).Inc()
	m.WalletDebitsAmountTotal.WithLabelValues(reason).Add(amount(value))
}

func (m *SettlementMetrics) RecordSettled(value decimal.Decimal) {
	if m == nil {
		return
	}
	m.SettledAmountTotal.Add(amount(value))
}

func (m *SettlementMetrics) RecordCommission(value decimal.Decimal) {
	if m == nil {
		return
	}
	m.CommissionsCalculatedTotal.Inc()
	m.CommissionAmountTotal.Add(amount(value))
}

func (m *SettlementMetrics) RecordWithdrawal(status string, value decimal.Decimal) {
	if m == nil {
		return
	}
	m.WithdrawalsTotal.WithLabelValues(status).Inc()
	m.WithdrawalsAmountTotal.WithLabelValues(status).Add(amount(value))
}

func (m *SettlementMetrics) RecordAdPurchase(packageID string) {
	if m == nil {
		return
	}
	m.AdPurchasesTotal.WithLabelValues(packageID).Inc()
}

func (m *SettlementMetrics) RecordRejected(operation, reason string) {
	if m == nil {
		return
	}
	m.RejectedOperationsTotal.WithLabelValues(operation, reason).Inc()
}

func (m *SettlementMetrics) RecordDuration(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.OperationDuration.WithLabelValues(operation).Observe(seconds)
}
