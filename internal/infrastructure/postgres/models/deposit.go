package models

import (
	"time"

	"github.com/finbridge/broker-funding-service/internal/domain"
)

type DepositModel struct {
	ID                  string                 `gorm:"primaryKey;type:uuid"`
	UserID              string                 `gorm:"index:idx_deposit_user"`
	Amount              float64
	Currency            string
	DestinationType     string
	TradingAccountLogin int64
	Status              domain.DepositStatus   `gorm:"index:idx_deposit_status"`
	GatewayOrderID      string                 `gorm:"uniqueIndex:idx_deposit_gateway_order"`
	GatewayStatus       string
	RejectReason        string
	CreatedAt           time.Time              `gorm:"index:idx_deposit_created_at"`
	UpdatedAt           time.Time
	GatewayTx           *GatewayTransactionModel `gorm:"foreignKey:GatewayOrderID;references:GatewayOrderID"`
}

func (DepositModel) TableName() string {
	return "deposits"
}
