package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbridge/broker-funding-service/internal/domain"
	publisher "github.com/finbridge/broker-funding-service/internal/infrastructure/kafka"
	"github.com/finbridge/broker-funding-service/internal/infrastructure/logger"
	depositdto "github.com/finbridge/broker-funding-service/internal/usecase/dto/deposit"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

func (uc *DefaultDepositUsecase) CreateDeposit(ctx context.Context, input *depositdto.CreateDepositInput) (*depositdto.CreateDepositOutput, error) {
	if input.Amount <= 0 {
		return nil, fmt.Errorf("deposit amount must be positive")
	}
	destination := domain.DestinationType(input.DestinationType)
	if destination != domain.DestinationWallet && destination != domain.DestinationTradingAccount {
		return nil, fmt.Errorf("unknown destination type %q", input.DestinationType)
	}
	if destination == domain.DestinationTradingAccount && input.TradingAccountLogin <= 0 {
		return nil, fmt.Errorf("trading account login is required")
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}
	gatewayOrderID := idGenerator()

	deposit := &domain.Deposit{
		ID:                  uuid.New().String(),
		UserID:              input.UserID,
		Amount:              input.Amount,
		Currency:            input.Currency,
		DestinationType:     destination,
		TradingAccountLogin: input.TradingAccountLogin,
		GatewayOrderID:      gatewayOrderID,
	}

	started := time.Now()
	orderResult, err := uc.Gateway.CreateOrder(ctx, &domain.CreateOrderInput{
		OrderID:  gatewayOrderID,
		Amount:   input.Amount,
		Currency: input.Currency,
		PayerID:  input.UserID,
	})
	uc.observeGatewayDuration("create_order", started)
	if err != nil {
		// Order creation failed: the deposit is recorded rejected, never
		// approved on this path
		deposit.Status = domain.StatusRejected
		deposit.RejectReason = err.Error()
		if createErr := uc.DepositRepo.CreateDeposit(deposit, nil); createErr != nil {
			slog.Error("failed to persist rejected deposit", "user_id", input.UserID, "error", createErr.Error())
		}
		uc.logDepositFailed(ctx, input, err)
		uc.recordGatewayError("create_order")
		return nil, err
	}

	deposit.Status = domain.StatusPending
	gatewayTx := &domain.GatewayTransaction{
		GatewayOrderID: gatewayOrderID,
		CregisID:       orderResult.CregisID,
		Status:         domain.GatewayStatusNew,
		CheckoutURL:    orderResult.CheckoutURL,
		PaymentAddress: orderResult.PaymentAddress,
		ExpiresAt:      orderResult.ExpiresAt,
	}

	if err := uc.DepositRepo.CreateDeposit(deposit, gatewayTx); err != nil {
		return nil, err
	}

	uc.logDepositCreated(ctx, deposit, orderResult.CregisID)
	uc.recordDepositCreated(deposit)
	uc.publishDepositEvent(publisher.DepositEvent{
		DepositID:      deposit.ID,
		UserID:         deposit.UserID,
		Status:         string(domain.StatusPending),
		Amount:         deposit.Amount,
		Currency:       deposit.Currency,
		GatewayOrderID: gatewayOrderID,
	})

	return &depositdto.CreateDepositOutput{
		DepositID:      deposit.ID,
		GatewayOrderID: gatewayOrderID,
		CheckoutURL:    orderResult.CheckoutURL,
		PaymentAddress: orderResult.PaymentAddress,
		ExpiresAt:      orderResult.ExpiresAt,
	}, nil
}

func (uc *DefaultDepositUsecase) logDepositCreated(ctx context.Context, deposit *domain.Deposit, cregisID string) {
	if uc.EventLogger == nil {
		return
	}
	if err := uc.EventLogger.LogDepositCreated(ctx, logger.DepositCreatedEvent{
		DepositID:      deposit.ID,
		UserID:         deposit.UserID,
		Amount:         deposit.Amount,
		Currency:       deposit.Currency,
		Destination:    string(deposit.DestinationType),
		GatewayOrderID: deposit.GatewayOrderID,
		CregisID:       cregisID,
		Timestamp:      time.Now(),
	}); err != nil {
		slog.Error("failed to log deposit created event", "deposit_id", deposit.ID, "error", err.Error())
	}
}

func (uc *DefaultDepositUsecase) logDepositFailed(ctx context.Context, input *depositdto.CreateDepositInput, cause error) {
	if uc.EventLogger == nil {
		return
	}
	if err := uc.EventLogger.LogDepositFailed(ctx, logger.DepositFailedEvent{
		UserID:    input.UserID,
		Reason:    cause.Error(),
		Amount:    input.Amount,
		Currency:  input.Currency,
		Timestamp: time.Now(),
	}); err != nil {
		slog.Error("failed to log deposit failed event", "user_id", input.UserID, "error", err.Error())
	}
}

func (uc *DefaultDepositUsecase) publishDepositEvent(event publisher.DepositEvent) {
	if uc.Publisher == nil {
		return
	}
	go func(event publisher.DepositEvent) {
		if err := uc.Publisher.PublishDeposit(event); err != nil {
			slog.Error("failed to publish kafka DepositEvent", "deposit_id", event.DepositID, "status", event.Status, "error", err.Error())
		}
	}(event)
}
