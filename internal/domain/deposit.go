package domain

import "time"

type DepositStatus string

const (
	StatusPending   DepositStatus = "PENDING"
	StatusApproved  DepositStatus = "APPROVED"
	StatusRejected  DepositStatus = "REJECTED"
	StatusCancelled DepositStatus = "CANCELLED"
)

// GatewayStatus is the payment provider's order status as it appears
// on the wire (webhook payloads and /order/info responses).
type GatewayStatus string

const (
	GatewayStatusNew         GatewayStatus = "new"
	GatewayStatusPaid        GatewayStatus = "paid"
	GatewayStatusPaidOver    GatewayStatus = "paid_over"
	GatewayStatusPaidPartial GatewayStatus = "paid_partial"
	GatewayStatusExpired     GatewayStatus = "expired"
	GatewayStatusRefunded    GatewayStatus = "refunded"
)

type DestinationType string

const (
	DestinationWallet         DestinationType = "wallet"
	DestinationTradingAccount DestinationType = "trading_account"
)

type Deposit struct {
	ID                  string
	UserID              string
	Amount              float64
	Currency            string
	DestinationType     DestinationType
	TradingAccountLogin int64
	Status              DepositStatus
	GatewayOrderID      string
	GatewayStatus       GatewayStatus
	RejectReason        string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	GatewayTx           *GatewayTransaction
}

// Terminal reports whether no further automatic transition applies.
func (d *Deposit) Terminal() bool {
	switch d.Status {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// MapGatewayStatus maps a provider order status to the candidate internal
// deposit status. new/paid_partial keep the deposit pending.
func MapGatewayStatus(s GatewayStatus) (DepositStatus, bool) {
	switch s {
	case GatewayStatusPaid, GatewayStatusPaidOver:
		return StatusApproved, true
	case GatewayStatusExpired, GatewayStatusRefunded:
		return StatusRejected, true
	case GatewayStatusNew, GatewayStatusPaidPartial:
		return StatusPending, true
	}
	return "", false
}
