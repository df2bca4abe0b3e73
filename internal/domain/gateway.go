package domain

import (
	"context"
	"time"
)

type CreateOrderInput struct {
	OrderID      string
	Amount       float64
	Currency     string
	PayerID      string
	ValidMinutes int
}

type CreateOrderResult struct {
	CregisID       string
	CheckoutURL    string
	PaymentAddress string
	ExpiresAt      time.Time
}

type OrderStatusResult struct {
	Status     GatewayStatus
	TxHash     string
	PaidAmount float64
}

// PaymentGateway is the crypto payment provider port. Errors wrap
// ErrGateway; a failed status query means "no new information".
type PaymentGateway interface {
	CreateOrder(ctx context.Context, input *CreateOrderInput) (*CreateOrderResult, error)
	QueryOrderStatus(ctx context.Context, cregisID string) (*OrderStatusResult, error)
}

// GatewayTransaction is the provider-side order record, owned by the
// deposit lifecycle and linked by GatewayOrderID.
type GatewayTransaction struct {
	GatewayOrderID string
	CregisID       string
	Status         GatewayStatus
	CheckoutURL    string
	PaymentAddress string
	ExpiresAt      time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
