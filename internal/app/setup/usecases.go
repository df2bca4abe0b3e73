package setup

import (
	"time"

	"github.com/finbridge/broker-funding-service/internal/config"
	"github.com/finbridge/broker-funding-service/internal/infrastructure/cregis"
	"github.com/finbridge/broker-funding-service/internal/infrastructure/metrics"
	"github.com/finbridge/broker-funding-service/internal/infrastructure/mt5"
	depositusecase "github.com/finbridge/broker-funding-service/internal/usecase/deposit"
	withdrawalusecase "github.com/finbridge/broker-funding-service/internal/usecase/withdrawal"
)

type UseCases struct {
	DepositUsecase    depositusecase.DepositUsecase
	WithdrawalUsecase withdrawalusecase.WithdrawalUsecase
	Metrics           *metrics.FundingMetrics
}

func InitializeUseCases(deps *Dependencies) *UseCases {
	fundingMetrics := metrics.NewFundingMetrics()

	gatewayClient := initCregisClient(deps.Config)
	tradingClient := initMT5Client(deps.Config)

	depositUsecase := depositusecase.NewDefaultDepositUsecase(
		deps.Repositories.DepositRepo,
		gatewayClient,
		tradingClient,
		deps.DepositPublisher,
		deps.StatusCache,
		deps.EventLogger,
		deps.OpsNotifier,
		fundingMetrics,
		time.Duration(deps.Config.RedisCache.PollTTLSeconds)*time.Second,
	)

	withdrawalUsecase := withdrawalusecase.NewDefaultWithdrawalUsecase(
		deps.Repositories.WithdrawalRepo,
		tradingClient,
		deps.WithdrawalPublisher,
		fundingMetrics,
	)

	return &UseCases{
		DepositUsecase:    depositUsecase,
		WithdrawalUsecase: withdrawalUsecase,
		Metrics:           fundingMetrics,
	}
}

func initCregisClient(cfg *config.FundingConfig) *cregis.Client {
	return cregis.NewClient(cregis.Config{
		BaseURL:         cfg.CregisGateway.BaseURL,
		ProjectID:       cfg.CregisGateway.ProjectID,
		APIKey:          cfg.CregisGateway.APIKey,
		CallbackURL:     cfg.CregisGateway.CallbackURL,
		SuccessURL:      cfg.CregisGateway.SuccessURL,
		CancelURL:       cfg.CregisGateway.CancelURL,
		TokenList:       cfg.CregisGateway.TokenList,
		ValidityMinutes: cfg.CregisGateway.ValidityMinutes,
		Timeout:         time.Duration(cfg.CregisGateway.TimeoutSeconds) * time.Second,
	})
}

func initMT5Client(cfg *config.FundingConfig) *mt5.Client {
	return mt5.NewClient(mt5.Config{
		BaseURL: cfg.MT5Manager.BaseURL,
		Token:   cfg.MT5Manager.Token,
		Timeout: time.Duration(cfg.MT5Manager.TimeoutSeconds) * time.Second,
	})
}
