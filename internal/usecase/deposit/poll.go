package usecase

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/finbridge/broker-funding-service/internal/domain"
)

// PollDeposit re-queries the gateway on user demand. Queries are
// throttled through the status cache so a user mashing refresh does not
// hammer the provider.
func (uc *DefaultDepositUsecase) PollDeposit(ctx context.Context, depositID, userID string) (*domain.Deposit, error) {
	deposit, err := uc.GetDepositByID(depositID, userID)
	if err != nil {
		return nil, err
	}
	if deposit.Terminal() {
		return deposit, nil
	}
	if deposit.GatewayTx == nil || deposit.GatewayTx.CregisID == "" {
		return deposit, nil
	}

	cacheKey := fmt.Sprintf("deposit:%s:gateway_status", deposit.ID)
	if uc.StatusCache != nil {
		if _, err := uc.StatusCache.Get(ctx, cacheKey); err == nil {
			// Recently polled, current state is fresh enough
			return deposit, nil
		}
	}

	started := time.Now()
	statusResult, err := uc.Gateway.QueryOrderStatus(ctx, deposit.GatewayTx.CregisID)
	uc.observeGatewayDuration("query_status", started)
	if err != nil {
		// No new information; the deposit state stays as it was
		uc.recordGatewayError("query_status")
		return nil, err
	}

	if uc.StatusCache != nil {
		if err := uc.StatusCache.Set(ctx, cacheKey, string(statusResult.Status), uc.PollTTL); err != nil {
			slog.Error("failed to cache gateway status", "deposit_id", deposit.ID, "error", err.Error())
		}
	}

	outcome, err := uc.Reconcile(ctx, deposit.ID, Observation{
		Status: statusResult.Status,
		TxHash: statusResult.TxHash,
		Source: "poll",
	})
	if err != nil {
		return nil, err
	}
	if outcome.Deposit != nil {
		return outcome.Deposit, nil
	}
	return deposit, nil
}

// SweepExpiredDeposits re-checks pending deposits whose gateway order
// passed its expiry. The gateway stays the source of truth: a paid order
// we never heard about still credits, an unpaid one comes back expired.
func (uc *DefaultDepositUsecase) SweepExpiredDeposits(ctx context.Context) error {
	deposits, err := uc.DepositRepo.FindPendingPastExpiry()
	if err != nil {
		return err
	}

	for _, deposit := range deposits {
		if deposit.GatewayTx == nil || deposit.GatewayTx.CregisID == "" {
			continue
		}
		started := time.Now()
		statusResult, err := uc.Gateway.QueryOrderStatus(ctx, deposit.GatewayTx.CregisID)
		uc.observeGatewayDuration("query_status", started)
		if err != nil {
			log.Printf("Expiry sweep: status query failed for deposit %s: %v\n", deposit.ID, err)
			uc.recordGatewayError("query_status")
			continue
		}
		if _, err := uc.Reconcile(ctx, deposit.ID, Observation{
			Status: statusResult.Status,
			TxHash: statusResult.TxHash,
			Source: "sweep",
		}); err != nil {
			log.Printf("Expiry sweep: reconcile failed for deposit %s: %v\n", deposit.ID, err)
		}
	}

	return nil
}
