package mappers

import (
	"github.com/finbridge/broker-funding-service/internal/domain"
	"github.com/finbridge/broker-funding-service/internal/infrastructure/postgres/models"
)

func ToGORMDeposit(deposit *domain.Deposit) *models.DepositModel {
	return &models.DepositModel{
		ID:                  deposit.ID,
		UserID:              deposit.UserID,
		Amount:              deposit.Amount,
		Currency:            deposit.Currency,
		DestinationType:     string(deposit.DestinationType),
		TradingAccountLogin: deposit.TradingAccountLogin,
		Status:              deposit.Status,
		GatewayOrderID:      deposit.GatewayOrderID,
		GatewayStatus:       string(deposit.GatewayStatus),
		RejectReason:        deposit.RejectReason,
	}
}

func ToDomainDeposit(model *models.DepositModel) *domain.Deposit {
	deposit := &domain.Deposit{
		ID:                  model.ID,
		UserID:              model.UserID,
		Amount:              model.Amount,
		Currency:            model.Currency,
		DestinationType:     domain.DestinationType(model.DestinationType),
		TradingAccountLogin: model.TradingAccountLogin,
		Status:              model.Status,
		GatewayOrderID:      model.GatewayOrderID,
		GatewayStatus:       domain.GatewayStatus(model.GatewayStatus),
		RejectReason:        model.RejectReason,
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}
	if model.GatewayTx != nil {
		deposit.GatewayTx = ToDomainGatewayTransaction(model.GatewayTx)
	}
	return deposit
}

func ToGORMGatewayTransaction(tx *domain.GatewayTransaction) *models.GatewayTransactionModel {
	return &models.GatewayTransactionModel{
		GatewayOrderID: tx.GatewayOrderID,
		CregisID:       tx.CregisID,
		Status:         string(tx.Status),
		CheckoutURL:    tx.CheckoutURL,
		PaymentAddress: tx.PaymentAddress,
		ExpiresAt:      tx.ExpiresAt,
	}
}

func ToDomainGatewayTransaction(model *models.GatewayTransactionModel) *domain.GatewayTransaction {
	return &domain.GatewayTransaction{
		GatewayOrderID: model.GatewayOrderID,
		CregisID:       model.CregisID,
		Status:         domain.GatewayStatus(model.Status),
		CheckoutURL:    model.CheckoutURL,
		PaymentAddress: model.PaymentAddress,
		ExpiresAt:      model.ExpiresAt,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

func ToDomainCreditEvent(model *models.CreditEventModel) *domain.CreditEvent {
	return &domain.CreditEvent{
		ID:        model.ID,
		DepositID: model.DepositID,
		Login:     model.Login,
		Amount:    model.Amount,
		Comment:   model.Comment,
		Success:   model.Success,
		Error:     model.Error,
		CreatedAt: model.CreatedAt,
	}
}
