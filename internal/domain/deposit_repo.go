package domain

import "context"

// ReconcileDecision is what the reconciliation state machine decided for
// one observed gateway status. ObservedStatus is persisted even when the
// internal status does not change.
type ReconcileDecision struct {
	ObservedStatus GatewayStatus
	NewStatus      DepositStatus
	IssueCredit    bool
}

type ReconcileOutcome struct {
	Deposit       *Deposit
	StatusChanged bool
	CreditIssued  bool
	CreditErr     error
}

// DecideFunc computes the transition for a deposit that is locked for the
// duration of the call. Returning (nil, nil) means "discard the event".
type DecideFunc func(d *Deposit) (*ReconcileDecision, error)

// CreditFunc issues the external balance credit while the deposit row
// lock is held.
type CreditFunc func(d *Deposit) error

type DepositFilters struct {
	Status DepositStatus
}

type DepositRepository interface {
	// CreateDeposit persists the deposit and (when non-nil) its gateway
	// transaction atomically.
	CreateDeposit(deposit *Deposit, gatewayTx *GatewayTransaction) error
	GetDepositByID(depositID string) (*Deposit, error)
	GetDepositByGatewayOrderID(gatewayOrderID string) (*Deposit, error)
	GetDepositsByUserID(userID string, page, limit int64, filters DepositFilters) ([]*Deposit, int64, error)
	// UpdateDepositStatusFrom flips status only when the current status
	// matches from; otherwise ErrDepositConflict.
	UpdateDepositStatusFrom(depositID string, from, to DepositStatus) error
	FindPendingPastExpiry() ([]*Deposit, error)
	// ReconcileDeposit runs decide and credit under a row lock on the
	// deposit, inserts the uniquely-keyed credit event, and persists the
	// new statuses in the same transaction. A duplicate credit insert
	// surfaces as ErrAlreadyCredited with everything rolled back.
	ReconcileDeposit(ctx context.Context, depositID string, decide DecideFunc, credit CreditFunc) (*ReconcileOutcome, error)
	GetCreditEventByDepositID(depositID string) (*CreditEvent, error)
}
