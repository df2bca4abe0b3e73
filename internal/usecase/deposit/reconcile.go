package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/finbridge/broker-funding-service/internal/domain"
	publisher "github.com/finbridge/broker-funding-service/internal/infrastructure/kafka"
	"github.com/finbridge/broker-funding-service/internal/infrastructure/notifier"
)

// Reconcile is the single authority deciding whether an observed gateway
// status changes the deposit and whether a credit is issued. Both the
// poll path and the webhook path land here; the repository serializes
// concurrent calls per deposit id.
func (uc *DefaultDepositUsecase) Reconcile(ctx context.Context, depositID string, obs Observation) (*domain.ReconcileOutcome, error) {
	uc.recordReconciliationEvent(obs)

	outcome, err := uc.DepositRepo.ReconcileDeposit(ctx, depositID,
		func(d *domain.Deposit) (*domain.ReconcileDecision, error) {
			if d.Terminal() {
				slog.Info("reconciliation discarded: deposit already terminal",
					"deposit_id", d.ID, "status", d.Status, "observed", obs.Status, "source", obs.Source)
				return nil, nil
			}
			if obs.Status == d.GatewayStatus {
				// Same observation as last time, nothing to do
				return nil, nil
			}
			candidate, ok := domain.MapGatewayStatus(obs.Status)
			if !ok {
				return nil, fmt.Errorf("%w: %q", domain.ErrUnknownGatewayState, obs.Status)
			}
			decision := &domain.ReconcileDecision{
				ObservedStatus: obs.Status,
				NewStatus:      candidate,
			}
			if candidate == domain.StatusApproved && d.DestinationType == domain.DestinationTradingAccount {
				decision.IssueCredit = true
			}
			return decision, nil
		},
		func(d *domain.Deposit) error {
			comment := fmt.Sprintf("deposit %s", d.GatewayOrderID)
			if obs.TxHash != "" {
				comment = fmt.Sprintf("deposit %s tx %s", d.GatewayOrderID, obs.TxHash)
			}
			return uc.TradingGateway.AddBalance(ctx, d.TradingAccountLogin, d.Amount, comment)
		},
	)
	if errors.Is(err, domain.ErrAlreadyCredited) {
		// Lost the race to a concurrent reconciliation: benign no-op
		slog.Info("reconciliation conflict: credit already issued", "deposit_id", depositID, "source", obs.Source)
		uc.recordReconciliationConflict()
		return &domain.ReconcileOutcome{}, nil
	}
	if err != nil {
		return nil, err
	}

	uc.afterReconcile(outcome, obs)
	return outcome, nil
}

// ReconcileByGatewayOrderID resolves the deposit behind a webhook's
// merchant order id and reconciles it.
func (uc *DefaultDepositUsecase) ReconcileByGatewayOrderID(ctx context.Context, gatewayOrderID string, obs Observation) error {
	deposit, err := uc.DepositRepo.GetDepositByGatewayOrderID(gatewayOrderID)
	if err != nil {
		return err
	}
	_, err = uc.Reconcile(ctx, deposit.ID, obs)
	return err
}

func (uc *DefaultDepositUsecase) afterReconcile(outcome *domain.ReconcileOutcome, obs Observation) {
	deposit := outcome.Deposit
	if deposit == nil || !outcome.StatusChanged {
		return
	}

	switch deposit.Status {
	case domain.StatusApproved:
		uc.recordDepositApproved(deposit, outcome)
		uc.publishDepositEvent(publisher.DepositEvent{
			DepositID:      deposit.ID,
			UserID:         deposit.UserID,
			Status:         string(domain.StatusApproved),
			Amount:         deposit.Amount,
			Currency:       deposit.Currency,
			GatewayOrderID: deposit.GatewayOrderID,
			TxHash:         obs.TxHash,
		})
	case domain.StatusRejected:
		uc.recordDepositRejected(deposit, obs.Status)
		uc.publishDepositEvent(publisher.DepositEvent{
			DepositID:      deposit.ID,
			UserID:         deposit.UserID,
			Status:         string(domain.StatusRejected),
			Amount:         deposit.Amount,
			Currency:       deposit.Currency,
			GatewayOrderID: deposit.GatewayOrderID,
		})
	}

	if outcome.CreditErr != nil {
		// Payment confirmed but the trading account was not credited:
		// surfaced for manual remediation, never retried here
		slog.Error("credit failed after confirmed payment",
			"deposit_id", deposit.ID,
			"login", deposit.TradingAccountLogin,
			"amount", deposit.Amount,
			"error", outcome.CreditErr.Error())
		uc.recordCreditFailure(deposit)
		uc.OpsNotifier.NotifyCreditFailure(notifier.CreditFailureAlert{
			DepositID: deposit.ID,
			Login:     deposit.TradingAccountLogin,
			Amount:    deposit.Amount,
			Currency:  deposit.Currency,
			Reason:    outcome.CreditErr.Error(),
		})
	}
}
