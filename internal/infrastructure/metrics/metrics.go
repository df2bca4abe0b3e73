package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// FundingMetrics содержит метрики депозитов и выводов
type FundingMetrics struct {
	DepositsCreatedTotal  prometheus.CounterVec
	DepositsApprovedTotal prometheus.CounterVec
	DepositsRejectedTotal prometheus.CounterVec
	DepositsCancelledTotal prometheus.CounterVec
	DepositsCreatedAmountTotal prometheus.CounterVec

	CreditsIssuedTotal  prometheus.CounterVec
	CreditsIssuedAmountTotal prometheus.CounterVec
	CreditFailuresTotal prometheus.CounterVec

	ReconciliationConflictsTotal prometheus.Counter
	ReconciliationEventsTotal    prometheus.CounterVec

	WebhookEventsTotal   prometheus.CounterVec
	WebhookRejectedTotal prometheus.Counter

	GatewayErrorsTotal prometheus.CounterVec
	GatewayRequestDuration prometheus.HistogramVec

	WithdrawalsCreatedTotal  prometheus.CounterVec
	WithdrawalsApprovedTotal prometheus.CounterVec
	WithdrawalsRejectedTotal prometheus.CounterVec
}

func NewFundingMetrics() *FundingMetrics {
	return &FundingMetrics{
		DepositsCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deposits_created_total",
				Help: "Общее количество созданных депозитов",
			},
			[]string{"currency", "destination"},
		),
		DepositsApprovedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deposits_approved_total",
				Help: "Депозиты, подтвержденные платежным шлюзом",
			},
			[]string{"currency"},
		),
		DepositsRejectedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deposits_rejected_total",
				Help: "Депозиты, отклоненные или истекшие на стороне шлюза",
			},
			[]string{"currency", "gateway_status"},
		),
		DepositsCancelledTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deposits_cancelled_total",
				Help: "Депозиты, отмененные пользователем",
			},
			[]string{"currency"},
		),
		DepositsCreatedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deposits_created_amount_total",
				Help: "Общая сумма созданных депозитов",
			},
			[]string{"currency"},
		),
		CreditsIssuedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credits_issued_total",
				Help: "Успешные зачисления на торговые счета",
			},
			[]string{"currency"},
		),
		CreditsIssuedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credits_issued_amount_total",
				Help: "Общая сумма зачислений на торговые счета",
			},
			[]string{"currency"},
		),
		CreditFailuresTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credit_failures_total",
				Help: "Неудачные зачисления после подтвержденной оплаты (требуют ручного разбора)",
			},
			[]string{"currency"},
		),
		ReconciliationConflictsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "reconciliation_conflicts_total",
				Help: "Конкурентные попытки повторного зачисления, отклоненные как no-op",
			},
		),
		ReconciliationEventsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reconciliation_events_total",
				Help: "Обработанные наблюдения статуса шлюза",
			},
			[]string{"source", "gateway_status"},
		),
		WebhookEventsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhook_events_total",
				Help: "Принятые webhook-события платежного шлюза",
			},
			[]string{"status"},
		),
		WebhookRejectedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "webhook_rejected_total",
				Help: "Webhook-события, отклоненные из-за подписи или формата",
			},
		),
		GatewayErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_errors_total",
				Help: "Ошибки запросов к платежному шлюзу",
			},
			[]string{"operation"},
		),
		GatewayRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gateway_request_duration_seconds",
				Help:    "Длительность запросов к платежному шлюзу",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		WithdrawalsCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "withdrawals_created_total",
				Help: "Общее количество заявок на вывод",
			},
			[]string{"currency"},
		),
		WithdrawalsApprovedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "withdrawals_approved_total",
				Help: "Одобренные заявки на вывод",
			},
			[]string{"currency"},
		),
		WithdrawalsRejectedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "withdrawals_rejected_total",
				Help: "Отклоненные заявки на вывод",
			},
			[]string{"currency"},
		),
	}
}
