package logger

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type DepositCreatedEvent struct {
	ID             uint `gorm:"primaryKey"`
	DepositID      string
	UserID         string
	Amount         float64
	Currency       string
	Destination    string
	GatewayOrderID string
	CregisID       string
	Timestamp      time.Time
}

type DepositFailedEvent struct {
	ID        uint `gorm:"primaryKey"`
	UserID    string
	Reason    string
	Amount    float64
	Currency  string
	Timestamp time.Time
}

type DepositEventLogger interface {
	LogDepositCreated(ctx context.Context, event DepositCreatedEvent) error
	LogDepositFailed(ctx context.Context, event DepositFailedEvent) error
}

type PGDepositEventLogger struct {
	db *gorm.DB
}

func NewPGDepositEventLogger(db *gorm.DB) *PGDepositEventLogger {
	return &PGDepositEventLogger{db: db}
}

func (l *PGDepositEventLogger) LogDepositCreated(ctx context.Context, event DepositCreatedEvent) error {
	return l.db.WithContext(ctx).Create(&event).Error
}

func (l *PGDepositEventLogger) LogDepositFailed(ctx context.Context, event DepositFailedEvent) error {
	return l.db.WithContext(ctx).Create(&event).Error
}
