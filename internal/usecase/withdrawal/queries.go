package usecase

import (
	"github.com/finbridge/broker-funding-service/internal/domain"
	withdrawaldto "github.com/finbridge/broker-funding-service/internal/usecase/dto/withdrawal"
)

func (uc *DefaultWithdrawalUsecase) GetWithdrawalByID(withdrawalID, userID string) (*domain.Withdrawal, error) {
	withdrawal, err := uc.WithdrawalRepo.GetWithdrawalByID(withdrawalID)
	if err != nil {
		return nil, err
	}
	if withdrawal.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	return withdrawal, nil
}

func (uc *DefaultWithdrawalUsecase) GetWithdrawalsByUserID(userID string, page, limit int64) (*withdrawaldto.ListWithdrawalsOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	withdrawals, total, err := uc.WithdrawalRepo.GetWithdrawalsByUserID(userID, page, limit)
	if err != nil {
		return nil, err
	}
	return &withdrawaldto.ListWithdrawalsOutput{Withdrawals: withdrawals, Total: total}, nil
}

func (uc *DefaultWithdrawalUsecase) ListWithdrawals(input *withdrawaldto.ListWithdrawalsInput) (*withdrawaldto.ListWithdrawalsOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}
	withdrawals, total, err := uc.WithdrawalRepo.ListWithdrawals(page, limit, domain.WithdrawalFilters{
		Status: domain.WithdrawalStatus(input.Status),
	})
	if err != nil {
		return nil, err
	}
	return &withdrawaldto.ListWithdrawalsOutput{Withdrawals: withdrawals, Total: total}, nil
}
