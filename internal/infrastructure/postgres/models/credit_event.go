package models

import "time"

// CreditEventModel is the credit ledger. The unique index on DepositID is
// the guard that makes concurrent reconciliation attempts safe: the
// second insert fails instead of crediting twice.
type CreditEventModel struct {
	ID        uint   `gorm:"primaryKey"`
	DepositID string `gorm:"uniqueIndex:idx_credit_event_deposit;type:uuid;not null"`
	Login     int64  `gorm:"not null"`
	Amount    float64 `gorm:"not null"`
	Comment   string
	Success   bool `gorm:"default:false"`
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CreditEventModel) TableName() string {
	return "credit_events"
}
