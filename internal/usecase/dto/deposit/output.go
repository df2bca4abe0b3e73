package depositdto

import (
	"time"

	"github.com/finbridge/broker-funding-service/internal/domain"
)

type CreateDepositOutput struct {
	DepositID      string
	GatewayOrderID string
	CheckoutURL    string
	PaymentAddress string
	ExpiresAt      time.Time
}

type GetDepositsOutput struct {
	Deposits []*domain.Deposit
	Total    int64
}
