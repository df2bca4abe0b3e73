package usecase

import (
	"time"

	"github.com/finbridge/broker-funding-service/internal/domain"
)

func (uc *DefaultDepositUsecase) recordDepositCreated(deposit *domain.Deposit) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.DepositsCreatedTotal.WithLabelValues(deposit.Currency, string(deposit.DestinationType)).Inc()
	uc.Metrics.DepositsCreatedAmountTotal.WithLabelValues(deposit.Currency).Add(deposit.Amount)
}

func (uc *DefaultDepositUsecase) recordDepositApproved(deposit *domain.Deposit, outcome *domain.ReconcileOutcome) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.DepositsApprovedTotal.WithLabelValues(deposit.Currency).Inc()
	if outcome.CreditIssued {
		uc.Metrics.CreditsIssuedTotal.WithLabelValues(deposit.Currency).Inc()
		uc.Metrics.CreditsIssuedAmountTotal.WithLabelValues(deposit.Currency).Add(deposit.Amount)
	}
}

func (uc *DefaultDepositUsecase) recordDepositRejected(deposit *domain.Deposit, gatewayStatus domain.GatewayStatus) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.DepositsRejectedTotal.WithLabelValues(deposit.Currency, string(gatewayStatus)).Inc()
}

func (uc *DefaultDepositUsecase) recordDepositCancelled(deposit *domain.Deposit) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.DepositsCancelledTotal.WithLabelValues(deposit.Currency).Inc()
}

func (uc *DefaultDepositUsecase) recordCreditFailure(deposit *domain.Deposit) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.CreditFailuresTotal.WithLabelValues(deposit.Currency).Inc()
}

func (uc *DefaultDepositUsecase) recordReconciliationConflict() {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.ReconciliationConflictsTotal.Inc()
}

func (uc *DefaultDepositUsecase) recordReconciliationEvent(obs Observation) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.ReconciliationEventsTotal.WithLabelValues(obs.Source, string(obs.Status)).Inc()
}

func (uc *DefaultDepositUsecase) observeGatewayDuration(operation string, started time.Time) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.GatewayRequestDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func (uc *DefaultDepositUsecase) recordGatewayError(operation string) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.GatewayErrorsTotal.WithLabelValues(operation).Inc()
}
