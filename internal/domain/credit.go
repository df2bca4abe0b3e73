package domain

import (
	"context"
	"time"
)

// CreditEvent records that balance Amount was added to trading account
// Login because of deposit DepositID. Keyed uniquely by DepositID so a
// second issue attempt fails instead of double-crediting.
type CreditEvent struct {
	ID        uint
	DepositID string
	Login     int64
	Amount    float64
	Comment   string
	Success   bool
	Error     string
	CreatedAt time.Time
}

// TradingAccountGateway is the trading-platform balance API port.
// Negative amounts debit the account. No retry policy here: blind
// retries risk double-crediting when only the response was lost.
type TradingAccountGateway interface {
	AddBalance(ctx context.Context, login int64, amount float64, comment string) error
}
