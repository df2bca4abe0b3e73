package models

import "time"

type GatewayTransactionModel struct {
	ID             uint   `gorm:"primaryKey"`
	GatewayOrderID string `gorm:"uniqueIndex:idx_gateway_tx_order"`
	CregisID       string `gorm:"index:idx_gateway_tx_cregis"`
	Status         string
	CheckoutURL    string
	PaymentAddress string
	ExpiresAt      time.Time `gorm:"index:idx_gateway_tx_expires"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (GatewayTransactionModel) TableName() string {
	return "gateway_transactions"
}
