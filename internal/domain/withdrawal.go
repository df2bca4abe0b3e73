package domain

import (
	"context"
	"time"
)

type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "PENDING"
	WithdrawalApproved WithdrawalStatus = "APPROVED"
	WithdrawalRejected WithdrawalStatus = "REJECTED"
)

type Withdrawal struct {
	ID                  string
	UserID              string
	TradingAccountLogin int64
	Amount              float64
	Currency            string
	WalletAddress       string
	Status              WithdrawalStatus
	RejectReason        string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type WithdrawalFilters struct {
	Status WithdrawalStatus
}

// DebitFunc issues the external account debit while the withdrawal row
// lock is held.
type DebitFunc func(w *Withdrawal) error

type WithdrawalRepository interface {
	CreateWithdrawal(withdrawal *Withdrawal) error
	GetWithdrawalByID(withdrawalID string) (*Withdrawal, error)
	GetWithdrawalsByUserID(userID string, page, limit int64) ([]*Withdrawal, int64, error)
	ListWithdrawals(page, limit int64, filters WithdrawalFilters) ([]*Withdrawal, int64, error)
	// UpdateWithdrawalStatusFrom flips status only from the expected
	// current status; otherwise ErrWithdrawalConflict.
	UpdateWithdrawalStatusFrom(withdrawalID string, from, to WithdrawalStatus, reason string) error
	// ApproveWithdrawal locks the withdrawal row, runs debit while the
	// lock is held, and flips pending to approved in the same
	// transaction. Concurrent approvals serialize on the lock; the loser
	// sees a non-pending status and gets ErrWithdrawalConflict, so the
	// account is debited at most once. A failed debit rolls back and
	// leaves the request pending.
	ApproveWithdrawal(ctx context.Context, withdrawalID string, debit DebitFunc) (*Withdrawal, error)
}
