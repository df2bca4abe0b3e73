package usecase

import (
	"context"
	"log/slog"

	"github.com/finbridge/broker-funding-service/internal/domain"
	publisher "github.com/finbridge/broker-funding-service/internal/infrastructure/kafka"
	"github.com/finbridge/broker-funding-service/internal/infrastructure/metrics"
	withdrawaldto "github.com/finbridge/broker-funding-service/internal/usecase/dto/withdrawal"
)

type WithdrawalUsecase interface {
	CreateWithdrawal(ctx context.Context, input *withdrawaldto.CreateWithdrawalInput) (*domain.Withdrawal, error)
	GetWithdrawalByID(withdrawalID, userID string) (*domain.Withdrawal, error)
	GetWithdrawalsByUserID(userID string, page, limit int64) (*withdrawaldto.ListWithdrawalsOutput, error)
	ListWithdrawals(input *withdrawaldto.ListWithdrawalsInput) (*withdrawaldto.ListWithdrawalsOutput, error)
	ApproveWithdrawal(ctx context.Context, withdrawalID string) error
	RejectWithdrawal(ctx context.Context, withdrawalID, reason string) error
}

type WithdrawalEventPublisher interface {
	PublishWithdrawal(event publisher.WithdrawalEvent) error
}

type DefaultWithdrawalUsecase struct {
	WithdrawalRepo domain.WithdrawalRepository
	TradingGateway domain.TradingAccountGateway
	Publisher      WithdrawalEventPublisher
	Metrics        *metrics.FundingMetrics
}

func NewDefaultWithdrawalUsecase(
	withdrawalRepo domain.WithdrawalRepository,
	tradingGateway domain.TradingAccountGateway,
	pub WithdrawalEventPublisher,
	fundingMetrics *metrics.FundingMetrics,
) *DefaultWithdrawalUsecase {
	return &DefaultWithdrawalUsecase{
		WithdrawalRepo: withdrawalRepo,
		TradingGateway: tradingGateway,
		Publisher:      pub,
		Metrics:        fundingMetrics,
	}
}

func (uc *DefaultWithdrawalUsecase) publishWithdrawalEvent(event publisher.WithdrawalEvent) {
	if uc.Publisher == nil {
		return
	}
	go func(event publisher.WithdrawalEvent) {
		if err := uc.Publisher.PublishWithdrawal(event); err != nil {
			slog.Error("failed to publish kafka WithdrawalEvent", "withdrawal_id", event.WithdrawalID, "status", event.Status, "error", err.Error())
		}
	}(event)
}
