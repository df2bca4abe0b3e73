package usecase

import (
	"context"
	"fmt"

	"github.com/finbridge/broker-funding-service/internal/domain"
	publisher "github.com/finbridge/broker-funding-service/internal/infrastructure/kafka"
	withdrawaldto "github.com/finbridge/broker-funding-service/internal/usecase/dto/withdrawal"
	"github.com/google/uuid"
)

func (uc *DefaultWithdrawalUsecase) CreateWithdrawal(ctx context.Context, input *withdrawaldto.CreateWithdrawalInput) (*domain.Withdrawal, error) {
	if input.Amount <= 0 {
		return nil, fmt.Errorf("withdrawal amount must be positive")
	}
	if input.TradingAccountLogin <= 0 {
		return nil, fmt.Errorf("trading account login is required")
	}

	withdrawal := &domain.Withdrawal{
		ID:                  uuid.New().String(),
		UserID:              input.UserID,
		TradingAccountLogin: input.TradingAccountLogin,
		Amount:              input.Amount,
		Currency:            input.Currency,
		WalletAddress:       input.WalletAddress,
		Status:              domain.WithdrawalPending,
	}

	if err := uc.WithdrawalRepo.CreateWithdrawal(withdrawal); err != nil {
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.WithdrawalsCreatedTotal.WithLabelValues(withdrawal.Currency).Inc()
	}
	uc.publishWithdrawalEvent(publisher.WithdrawalEvent{
		WithdrawalID: withdrawal.ID,
		UserID:       withdrawal.UserID,
		Status:       string(domain.WithdrawalPending),
		Amount:       withdrawal.Amount,
		Currency:     withdrawal.Currency,
		Login:        withdrawal.TradingAccountLogin,
	})

	return withdrawal, nil
}

// ApproveWithdrawal debits the trading account under the repository's
// per-withdrawal lock: concurrent approvals serialize there, so the
// account is debited at most once. A failed debit rolls back and leaves
// the request pending for the admin to retry or reject.
func (uc *DefaultWithdrawalUsecase) ApproveWithdrawal(ctx context.Context, withdrawalID string) error {
	withdrawal, err := uc.WithdrawalRepo.ApproveWithdrawal(ctx, withdrawalID,
		func(w *domain.Withdrawal) error {
			comment := fmt.Sprintf("withdrawal %s", w.ID)
			return uc.TradingGateway.AddBalance(ctx, w.TradingAccountLogin, -w.Amount, comment)
		},
	)
	if err != nil {
		return err
	}

	if uc.Metrics != nil {
		uc.Metrics.WithdrawalsApprovedTotal.WithLabelValues(withdrawal.Currency).Inc()
	}
	uc.publishWithdrawalEvent(publisher.WithdrawalEvent{
		WithdrawalID: withdrawal.ID,
		UserID:       withdrawal.UserID,
		Status:       string(domain.WithdrawalApproved),
		Amount:       withdrawal.Amount,
		Currency:     withdrawal.Currency,
		Login:        withdrawal.TradingAccountLogin,
	})

	return nil
}

func (uc *DefaultWithdrawalUsecase) RejectWithdrawal(ctx context.Context, withdrawalID, reason string) error {
	withdrawal, err := uc.WithdrawalRepo.GetWithdrawalByID(withdrawalID)
	if err != nil {
		return err
	}
	if withdrawal.Status != domain.WithdrawalPending {
		return domain.ErrWithdrawalConflict
	}

	if err := uc.WithdrawalRepo.UpdateWithdrawalStatusFrom(withdrawalID, domain.WithdrawalPending, domain.WithdrawalRejected, reason); err != nil {
		return err
	}

	if uc.Metrics != nil {
		uc.Metrics.WithdrawalsRejectedTotal.WithLabelValues(withdrawal.Currency).Inc()
	}
	uc.publishWithdrawalEvent(publisher.WithdrawalEvent{
		WithdrawalID: withdrawal.ID,
		UserID:       withdrawal.UserID,
		Status:       string(domain.WithdrawalRejected),
		Amount:       withdrawal.Amount,
		Currency:     withdrawal.Currency,
		Login:        withdrawal.TradingAccountLogin,
		Reason:       reason,
	})

	return nil
}
