package setup

import (
	"fmt"

	"github.com/finbridge/broker-funding-service/internal/config"
	"github.com/finbridge/broker-funding-service/internal/domain"
	publisher "github.com/finbridge/broker-funding-service/internal/infrastructure/kafka"
	"github.com/finbridge/broker-funding-service/internal/infrastructure/logger"
	"github.com/finbridge/broker-funding-service/internal/infrastructure/notifier"
	"github.com/finbridge/broker-funding-service/internal/infrastructure/postgres"
	"github.com/finbridge/broker-funding-service/internal/infrastructure/postgres/repository"
	rediscache "github.com/finbridge/broker-funding-service/internal/infrastructure/redis"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config              *config.FundingConfig
	DB                  *gorm.DB
	DepositPublisher    *publisher.KafkaPublisher
	WithdrawalPublisher *publisher.KafkaPublisher
	StatusCache         *rediscache.Client
	EventLogger         logger.DepositEventLogger
	OpsNotifier         *notifier.Notifier
	Repositories        *Repositories
}

type Repositories struct {
	DepositRepo    domain.DepositRepository
	WithdrawalRepo domain.WithdrawalRepository
}

func InitializeDependencies(cfg *config.FundingConfig) *Dependencies {
	db := postgres.MustInitDB(cfg)

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	depositPublisher := publisher.NewKafkaPublisher(brokers, "deposit-events")
	withdrawalPublisher := publisher.NewKafkaPublisher(brokers, "withdrawal-events")

	return &Dependencies{
		Config:              cfg,
		DB:                  db,
		DepositPublisher:    depositPublisher,
		WithdrawalPublisher: withdrawalPublisher,
		StatusCache:         rediscache.NewClient(cfg.RedisCache.Addr),
		EventLogger:         logger.NewPGDepositEventLogger(db),
		OpsNotifier:         notifier.NewNotifier(cfg.OpsAlert.WebhookURL),
		Repositories: &Repositories{
			DepositRepo:    repository.NewDefaultDepositRepository(db),
			WithdrawalRepo: repository.NewDefaultWithdrawalRepository(db),
		},
	}
}
