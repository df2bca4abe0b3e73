package usecase

import (
	"github.com/finbridge/broker-funding-service/internal/domain"
	depositdto "github.com/finbridge/broker-funding-service/internal/usecase/dto/deposit"
)

func (uc *DefaultDepositUsecase) GetDepositByID(depositID, userID string) (*domain.Deposit, error) {
	deposit, err := uc.DepositRepo.GetDepositByID(depositID)
	if err != nil {
		return nil, err
	}
	if deposit.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	return deposit, nil
}

func (uc *DefaultDepositUsecase) GetDeposits(input *depositdto.GetDepositsInput) (*depositdto.GetDepositsOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	deposits, total, err := uc.DepositRepo.GetDepositsByUserID(input.UserID, page, limit, domain.DepositFilters{
		Status: domain.DepositStatus(input.Status),
	})
	if err != nil {
		return nil, err
	}

	return &depositdto.GetDepositsOutput{
		Deposits: deposits,
		Total:    total,
	}, nil
}
