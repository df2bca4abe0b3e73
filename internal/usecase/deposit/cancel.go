package usecase

import (
	"context"

	"github.com/finbridge/broker-funding-service/internal/domain"
	publisher "github.com/finbridge/broker-funding-service/internal/infrastructure/kafka"
)

// CancelDeposit is the only path into CANCELLED and applies solely to
// pending deposits, by explicit user action.
func (uc *DefaultDepositUsecase) CancelDeposit(ctx context.Context, depositID, userID string) error {
	deposit, err := uc.GetDepositByID(depositID, userID)
	if err != nil {
		return err
	}
	if deposit.Status != domain.StatusPending {
		return domain.ErrDepositConflict
	}

	if err := uc.DepositRepo.UpdateDepositStatusFrom(depositID, domain.StatusPending, domain.StatusCancelled); err != nil {
		return err
	}

	uc.recordDepositCancelled(deposit)
	uc.publishDepositEvent(publisher.DepositEvent{
		DepositID:      deposit.ID,
		UserID:         deposit.UserID,
		Status:         string(domain.StatusCancelled),
		Amount:         deposit.Amount,
		Currency:       deposit.Currency,
		GatewayOrderID: deposit.GatewayOrderID,
	})

	return nil
}
