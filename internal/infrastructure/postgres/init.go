package postgres

import (
	"log"

	"github.com/finbridge/broker-funding-service/internal/config"
	"github.com/finbridge/broker-funding-service/internal/infrastructure/logger"
	"github.com/finbridge/broker-funding-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.FundingConfig) *gorm.DB {
	dsn := cfg.FundingDB.Dsn
	// TranslateError lets us detect the credit ledger unique violation
	// as gorm.ErrDuplicatedKey
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.DepositModel{},
		&models.GatewayTransactionModel{},
		&models.CreditEventModel{},
		&models.WithdrawalModel{},
		&logger.DepositCreatedEvent{},
		&logger.DepositFailedEvent{},
	)

	return db
}
