package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/finbridge/broker-funding-service/internal/domain"
	withdrawaldto "github.com/finbridge/broker-funding-service/internal/usecase/dto/withdrawal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWithdrawalRepo struct {
	mu          sync.Mutex
	withdrawals map[string]*domain.Withdrawal
}

func newFakeWithdrawalRepo() *fakeWithdrawalRepo {
	return &fakeWithdrawalRepo{withdrawals: make(map[string]*domain.Withdrawal)}
}

func (r *fakeWithdrawalRepo) CreateWithdrawal(withdrawal *domain.Withdrawal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *withdrawal
	r.withdrawals[withdrawal.ID] = &clone
	return nil
}

func (r *fakeWithdrawalRepo) GetWithdrawalByID(withdrawalID string) (*domain.Withdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	withdrawal, ok := r.withdrawals[withdrawalID]
	if !ok {
		return nil, domain.ErrWithdrawalNotFound
	}
	clone := *withdrawal
	return &clone, nil
}

func (r *fakeWithdrawalRepo) GetWithdrawalsByUserID(userID string, page, limit int64) ([]*domain.Withdrawal, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var withdrawals []*domain.Withdrawal
	for _, withdrawal := range r.withdrawals {
		if withdrawal.UserID == userID {
			clone := *withdrawal
			withdrawals = append(withdrawals, &clone)
		}
	}
	return withdrawals, int64(len(withdrawals)), nil
}

func (r *fakeWithdrawalRepo) ListWithdrawals(page, limit int64, filters domain.WithdrawalFilters) ([]*domain.Withdrawal, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var withdrawals []*domain.Withdrawal
	for _, withdrawal := range r.withdrawals {
		if filters.Status != "" && withdrawal.Status != filters.Status {
			continue
		}
		clone := *withdrawal
		withdrawals = append(withdrawals, &clone)
	}
	return withdrawals, int64(len(withdrawals)), nil
}

// ApproveWithdrawal holds the mutex across the debit, standing in for
// the postgres row lock.
func (r *fakeWithdrawalRepo) ApproveWithdrawal(ctx context.Context, withdrawalID string, debit domain.DebitFunc) (*domain.Withdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	withdrawal, ok := r.withdrawals[withdrawalID]
	if !ok {
		return nil, domain.ErrWithdrawalNotFound
	}
	if withdrawal.Status != domain.WithdrawalPending {
		return nil, domain.ErrWithdrawalConflict
	}

	clone := *withdrawal
	if err := debit(&clone); err != nil {
		return nil, err
	}

	withdrawal.Status = domain.WithdrawalApproved
	clone.Status = domain.WithdrawalApproved
	return &clone, nil
}

func (r *fakeWithdrawalRepo) UpdateWithdrawalStatusFrom(withdrawalID string, from, to domain.WithdrawalStatus, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	withdrawal, ok := r.withdrawals[withdrawalID]
	if !ok || withdrawal.Status != from {
		return domain.ErrWithdrawalConflict
	}
	withdrawal.Status = to
	withdrawal.RejectReason = reason
	return nil
}

type fakeTradingGateway struct {
	mu      sync.Mutex
	err     error
	amounts []float64
}

func (g *fakeTradingGateway) AddBalance(ctx context.Context, login int64, amount float64, comment string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return g.err
	}
	g.amounts = append(g.amounts, amount)
	return nil
}

func seedPendingWithdrawal(t *testing.T, uc *DefaultWithdrawalUsecase) *domain.Withdrawal {
	t.Helper()
	withdrawal, err := uc.CreateWithdrawal(context.Background(), &withdrawaldto.CreateWithdrawalInput{
		UserID:              "user-1",
		TradingAccountLogin: 12345,
		Amount:              40,
		Currency:            "USDT",
		WalletAddress:       "TXwallet",
	})
	require.NoError(t, err)
	return withdrawal
}

func TestCreateWithdrawal(t *testing.T) {
	repo := newFakeWithdrawalRepo()
	uc := NewDefaultWithdrawalUsecase(repo, &fakeTradingGateway{}, nil, nil)

	withdrawal := seedPendingWithdrawal(t, uc)
	assert.Equal(t, domain.WithdrawalPending, withdrawal.Status)

	_, err := uc.CreateWithdrawal(context.Background(), &withdrawaldto.CreateWithdrawalInput{
		UserID: "user-1", TradingAccountLogin: 12345, Amount: -1, Currency: "USDT",
	})
	assert.Error(t, err)

	_, err = uc.CreateWithdrawal(context.Background(), &withdrawaldto.CreateWithdrawalInput{
		UserID: "user-1", Amount: 10, Currency: "USDT",
	})
	assert.Error(t, err, "login is required")
}

func TestApproveWithdrawal(t *testing.T) {
	t.Run("debits before flipping status", func(t *testing.T) {
		repo := newFakeWithdrawalRepo()
		trading := &fakeTradingGateway{}
		uc := NewDefaultWithdrawalUsecase(repo, trading, nil, nil)
		withdrawal := seedPendingWithdrawal(t, uc)

		require.NoError(t, uc.ApproveWithdrawal(context.Background(), withdrawal.ID))

		require.Len(t, trading.amounts, 1)
		assert.Equal(t, float64(-40), trading.amounts[0])

		stored, err := repo.GetWithdrawalByID(withdrawal.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.WithdrawalApproved, stored.Status)
	})

	t.Run("failed debit leaves request pending", func(t *testing.T) {
		repo := newFakeWithdrawalRepo()
		trading := &fakeTradingGateway{err: errors.New("manager api down")}
		uc := NewDefaultWithdrawalUsecase(repo, trading, nil, nil)
		withdrawal := seedPendingWithdrawal(t, uc)

		err := uc.ApproveWithdrawal(context.Background(), withdrawal.ID)
		assert.Error(t, err)

		stored, err := repo.GetWithdrawalByID(withdrawal.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.WithdrawalPending, stored.Status)
	})

	t.Run("concurrent approvals debit exactly once", func(t *testing.T) {
		repo := newFakeWithdrawalRepo()
		trading := &fakeTradingGateway{}
		uc := NewDefaultWithdrawalUsecase(repo, trading, nil, nil)
		withdrawal := seedPendingWithdrawal(t, uc)

		const workers = 8
		var wg sync.WaitGroup
		errs := make([]error, workers)
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func(i int) {
				defer wg.Done()
				errs[i] = uc.ApproveWithdrawal(context.Background(), withdrawal.ID)
			}(i)
		}
		wg.Wait()

		approvals := 0
		for _, err := range errs {
			if err == nil {
				approvals++
			} else {
				assert.ErrorIs(t, err, domain.ErrWithdrawalConflict)
			}
		}
		assert.Equal(t, 1, approvals, "exactly one approval wins")
		assert.Equal(t, []float64{-40}, trading.amounts, "the account is debited exactly once")

		stored, err := repo.GetWithdrawalByID(withdrawal.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.WithdrawalApproved, stored.Status)
	})

	t.Run("approving twice conflicts", func(t *testing.T) {
		repo := newFakeWithdrawalRepo()
		trading := &fakeTradingGateway{}
		uc := NewDefaultWithdrawalUsecase(repo, trading, nil, nil)
		withdrawal := seedPendingWithdrawal(t, uc)

		require.NoError(t, uc.ApproveWithdrawal(context.Background(), withdrawal.ID))
		err := uc.ApproveWithdrawal(context.Background(), withdrawal.ID)
		assert.ErrorIs(t, err, domain.ErrWithdrawalConflict)
		assert.Len(t, trading.amounts, 1, "the account is debited exactly once")
	})
}

func TestRejectWithdrawal(t *testing.T) {
	repo := newFakeWithdrawalRepo()
	trading := &fakeTradingGateway{}
	uc := NewDefaultWithdrawalUsecase(repo, trading, nil, nil)
	withdrawal := seedPendingWithdrawal(t, uc)

	require.NoError(t, uc.RejectWithdrawal(context.Background(), withdrawal.ID, "kyc mismatch"))

	stored, err := repo.GetWithdrawalByID(withdrawal.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WithdrawalRejected, stored.Status)
	assert.Equal(t, "kyc mismatch", stored.RejectReason)
	assert.Empty(t, trading.amounts, "rejected withdrawals never touch the balance")

	err = uc.RejectWithdrawal(context.Background(), withdrawal.ID, "again")
	assert.ErrorIs(t, err, domain.ErrWithdrawalConflict)
}

func TestWithdrawalOwnership(t *testing.T) {
	repo := newFakeWithdrawalRepo()
	uc := NewDefaultWithdrawalUsecase(repo, &fakeTradingGateway{}, nil, nil)
	withdrawal := seedPendingWithdrawal(t, uc)

	got, err := uc.GetWithdrawalByID(withdrawal.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, withdrawal.ID, got.ID)

	_, err = uc.GetWithdrawalByID(withdrawal.ID, "user-2")
	assert.ErrorIs(t, err, domain.ErrNotOwner)
}
