package models

import (
	"time"

	"github.com/finbridge/broker-funding-service/internal/domain"
)

type WithdrawalModel struct {
	ID                  string `gorm:"primaryKey;type:uuid"`
	UserID              string `gorm:"index:idx_withdrawal_user"`
	TradingAccountLogin int64
	Amount              float64
	Currency            string
	WalletAddress       string
	Status              domain.WithdrawalStatus `gorm:"index:idx_withdrawal_status"`
	RejectReason        string
	CreatedAt           time.Time `gorm:"index:idx_withdrawal_created_at"`
	UpdatedAt           time.Time
}

func (WithdrawalModel) TableName() string {
	return "withdrawals"
}
