package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/finbridge/broker-funding-service/internal/domain"
)

// fakeDepositRepo mirrors the postgres repository's locking discipline:
// one mutex standing in for the row lock, and a uniquely keyed credit
// ledger whose duplicate insert maps to ErrAlreadyCredited.
type fakeDepositRepo struct {
	mu       sync.Mutex
	deposits map[string]*domain.Deposit
	credits  map[string]*domain.CreditEvent
	expired  []string
}

func newFakeDepositRepo() *fakeDepositRepo {
	return &fakeDepositRepo{
		deposits: make(map[string]*domain.Deposit),
		credits:  make(map[string]*domain.CreditEvent),
	}
}

func (r *fakeDepositRepo) CreateDeposit(deposit *domain.Deposit, gatewayTx *domain.GatewayTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.deposits[deposit.ID]; ok {
		return errors.New("duplicate deposit id")
	}
	clone := *deposit
	if gatewayTx != nil {
		txClone := *gatewayTx
		clone.GatewayTx = &txClone
	}
	r.deposits[deposit.ID] = &clone
	return nil
}

func (r *fakeDepositRepo) GetDepositByID(depositID string) (*domain.Deposit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cloneDeposit(depositID)
}

func (r *fakeDepositRepo) GetDepositByGatewayOrderID(gatewayOrderID string) (*domain.Deposit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, deposit := range r.deposits {
		if deposit.GatewayOrderID == gatewayOrderID {
			return r.cloneDeposit(id)
		}
	}
	return nil, domain.ErrDepositNotFound
}

func (r *fakeDepositRepo) GetDepositsByUserID(userID string, page, limit int64, filters domain.DepositFilters) ([]*domain.Deposit, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deposits []*domain.Deposit
	for id, deposit := range r.deposits {
		if deposit.UserID != userID {
			continue
		}
		if filters.Status != "" && deposit.Status != filters.Status {
			continue
		}
		clone, _ := r.cloneDeposit(id)
		deposits = append(deposits, clone)
	}
	return deposits, int64(len(deposits)), nil
}

func (r *fakeDepositRepo) UpdateDepositStatusFrom(depositID string, from, to domain.DepositStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	deposit, ok := r.deposits[depositID]
	if !ok || deposit.Status != from {
		return domain.ErrDepositConflict
	}
	deposit.Status = to
	return nil
}

func (r *fakeDepositRepo) FindPendingPastExpiry() ([]*domain.Deposit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deposits []*domain.Deposit
	for _, id := range r.expired {
		if deposit, ok := r.deposits[id]; ok && deposit.Status == domain.StatusPending {
			clone, _ := r.cloneDeposit(deposit.ID)
			deposits = append(deposits, clone)
		}
	}
	return deposits, nil
}

func (r *fakeDepositRepo) ReconcileDeposit(ctx context.Context, depositID string, decide domain.DecideFunc, credit domain.CreditFunc) (*domain.ReconcileOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.deposits[depositID]
	if !ok {
		return nil, domain.ErrDepositNotFound
	}
	deposit, _ := r.cloneDeposit(depositID)
	outcome := &domain.ReconcileOutcome{}

	decision, err := decide(deposit)
	if err != nil {
		return nil, err
	}
	if decision == nil {
		outcome.Deposit = deposit
		return outcome, nil
	}

	if decision.IssueCredit {
		if _, exists := r.credits[depositID]; exists {
			return nil, domain.ErrAlreadyCredited
		}
		event := &domain.CreditEvent{
			DepositID: depositID,
			Login:     deposit.TradingAccountLogin,
			Amount:    deposit.Amount,
			CreatedAt: time.Now(),
		}
		r.credits[depositID] = event
		if creditErr := credit(deposit); creditErr != nil {
			outcome.CreditErr = creditErr
			event.Success = false
			event.Error = creditErr.Error()
		} else {
			outcome.CreditIssued = true
			event.Success = true
		}
	}

	stored.GatewayStatus = decision.ObservedStatus
	if stored.GatewayTx != nil {
		stored.GatewayTx.Status = decision.ObservedStatus
	}
	if decision.NewStatus != stored.Status {
		stored.Status = decision.NewStatus
		outcome.StatusChanged = true
	}

	deposit.Status = stored.Status
	deposit.GatewayStatus = stored.GatewayStatus
	outcome.Deposit = deposit
	return outcome, nil
}

func (r *fakeDepositRepo) GetCreditEventByDepositID(depositID string) (*domain.CreditEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.credits[depositID]
	if !ok {
		return nil, nil
	}
	clone := *event
	return &clone, nil
}

// cloneDeposit requires r.mu held.
func (r *fakeDepositRepo) cloneDeposit(depositID string) (*domain.Deposit, error) {
	deposit, ok := r.deposits[depositID]
	if !ok {
		return nil, domain.ErrDepositNotFound
	}
	clone := *deposit
	if deposit.GatewayTx != nil {
		txClone := *deposit.GatewayTx
		clone.GatewayTx = &txClone
	}
	return &clone, nil
}

func (r *fakeDepositRepo) creditCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.credits)
}

type fakePaymentGateway struct {
	mu           sync.Mutex
	createResult *domain.CreateOrderResult
	createErr    error
	statusResult *domain.OrderStatusResult
	statusErr    error
	statusCalls  int
}

func (g *fakePaymentGateway) CreateOrder(ctx context.Context, input *domain.CreateOrderInput) (*domain.CreateOrderResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.createErr != nil {
		return nil, g.createErr
	}
	return g.createResult, nil
}

func (g *fakePaymentGateway) QueryOrderStatus(ctx context.Context, cregisID string) (*domain.OrderStatusResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.statusCalls++
	if g.statusErr != nil {
		return nil, g.statusErr
	}
	return g.statusResult, nil
}

type balanceCall struct {
	login  int64
	amount float64
}

type fakeTradingGateway struct {
	mu    sync.Mutex
	err   error
	calls []balanceCall
}

func (g *fakeTradingGateway) AddBalance(ctx context.Context, login int64, amount float64, comment string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return g.err
	}
	g.calls = append(g.calls, balanceCall{login: login, amount: amount})
	return nil
}

func (g *fakeTradingGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

type fakeStatusCache struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeStatusCache() *fakeStatusCache {
	return &fakeStatusCache{values: make(map[string]string)}
}

func (c *fakeStatusCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.values[key]
	if !ok {
		return "", errors.New("key not found")
	}
	return value, nil
}

func (c *fakeStatusCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value.(string)
	return nil
}

func (c *fakeStatusCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

func (c *fakeStatusCache) Close() error { return nil }

func newTestUsecase(repo *fakeDepositRepo, gateway *fakePaymentGateway, trading *fakeTradingGateway) *DefaultDepositUsecase {
	return NewDefaultDepositUsecase(repo, gateway, trading, nil, nil, nil, nil, nil, 15*time.Second)
}

func seedPendingDeposit(repo *fakeDepositRepo, id string) *domain.Deposit {
	deposit := &domain.Deposit{
		ID:                  id,
		UserID:              "user-1",
		Amount:              100,
		Currency:            "USDT",
		DestinationType:     domain.DestinationTradingAccount,
		TradingAccountLogin: 12345,
		Status:              domain.StatusPending,
		GatewayOrderID:      "order-" + id,
		GatewayStatus:       domain.GatewayStatusNew,
	}
	gatewayTx := &domain.GatewayTransaction{
		GatewayOrderID: deposit.GatewayOrderID,
		CregisID:       "cregis-" + id,
		Status:         domain.GatewayStatusNew,
		ExpiresAt:      time.Now().Add(30 * time.Minute),
	}
	if err := repo.CreateDeposit(deposit, gatewayTx); err != nil {
		panic(err)
	}
	deposit.GatewayTx = gatewayTx
	return deposit
}
