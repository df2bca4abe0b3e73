package mappers

import (
	"github.com/finbridge/broker-funding-service/internal/domain"
	"github.com/finbridge/broker-funding-service/internal/infrastructure/postgres/models"
)

func ToGORMWithdrawal(withdrawal *domain.Withdrawal) *models.WithdrawalModel {
	return &models.WithdrawalModel{
		ID:                  withdrawal.ID,
		UserID:              withdrawal.UserID,
		TradingAccountLogin: withdrawal.TradingAccountLogin,
		Amount:              withdrawal.Amount,
		Currency:            withdrawal.Currency,
		WalletAddress:       withdrawal.WalletAddress,
		Status:              withdrawal.Status,
		RejectReason:        withdrawal.RejectReason,
	}
}

func ToDomainWithdrawal(model *models.WithdrawalModel) *domain.Withdrawal {
	return &domain.Withdrawal{
		ID:                  model.ID,
		UserID:              model.UserID,
		TradingAccountLogin: model.TradingAccountLogin,
		Amount:              model.Amount,
		Currency:            model.Currency,
		WalletAddress:       model.WalletAddress,
		Status:              model.Status,
		RejectReason:        model.RejectReason,
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}
}
