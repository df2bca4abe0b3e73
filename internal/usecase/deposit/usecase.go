package usecase

import (
	"context"
	"time"

	"github.com/finbridge/broker-funding-service/internal/domain"
	publisher "github.com/finbridge/broker-funding-service/internal/infrastructure/kafka"
	"github.com/finbridge/broker-funding-service/internal/infrastructure/logger"
	"github.com/finbridge/broker-funding-service/internal/infrastructure/metrics"
	"github.com/finbridge/broker-funding-service/internal/infrastructure/notifier"
	rediscache "github.com/finbridge/broker-funding-service/internal/infrastructure/redis"
	depositdto "github.com/finbridge/broker-funding-service/internal/usecase/dto/deposit"
)

// Observation is one externally observed gateway status, from whichever
// path saw it first: user poll, webhook, or the expiry sweep.
type Observation struct {
	Status domain.GatewayStatus
	TxHash string
	Source string
}

type DepositUsecase interface {
	CreateDeposit(ctx context.Context, input *depositdto.CreateDepositInput) (*depositdto.CreateDepositOutput, error)
	GetDepositByID(depositID, userID string) (*domain.Deposit, error)
	GetDeposits(input *depositdto.GetDepositsInput) (*depositdto.GetDepositsOutput, error)
	PollDeposit(ctx context.Context, depositID, userID string) (*domain.Deposit, error)
	CancelDeposit(ctx context.Context, depositID, userID string) error
	Reconcile(ctx context.Context, depositID string, obs Observation) (*domain.ReconcileOutcome, error)
	ReconcileByGatewayOrderID(ctx context.Context, gatewayOrderID string, obs Observation) error
	SweepExpiredDeposits(ctx context.Context) error
}

type DepositEventPublisher interface {
	PublishDeposit(event publisher.DepositEvent) error
}

type DefaultDepositUsecase struct {
	DepositRepo    domain.DepositRepository
	Gateway        domain.PaymentGateway
	TradingGateway domain.TradingAccountGateway
	Publisher      DepositEventPublisher
	StatusCache    rediscache.StatusCache
	EventLogger    logger.DepositEventLogger
	OpsNotifier    *notifier.Notifier
	Metrics        *metrics.FundingMetrics
	PollTTL        time.Duration
}

func NewDefaultDepositUsecase(
	depositRepo domain.DepositRepository,
	gateway domain.PaymentGateway,
	tradingGateway domain.TradingAccountGateway,
	pub DepositEventPublisher,
	statusCache rediscache.StatusCache,
	eventLogger logger.DepositEventLogger,
	opsNotifier *notifier.Notifier,
	fundingMetrics *metrics.FundingMetrics,
	pollTTL time.Duration,
) *DefaultDepositUsecase {
	return &DefaultDepositUsecase{
		DepositRepo:    depositRepo,
		Gateway:        gateway,
		TradingGateway: tradingGateway,
		Publisher:      pub,
		StatusCache:    statusCache,
		EventLogger:    eventLogger,
		OpsNotifier:    opsNotifier,
		Metrics:        fundingMetrics,
		PollTTL:        pollTTL,
	}
}
