package repository

import (
	"context"
	"errors"
	"time"

	"github.com/finbridge/broker-funding-service/internal/domain"
	"github.com/finbridge/broker-funding-service/internal/infrastructure/postgres/mappers"
	"github.com/finbridge/broker-funding-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultDepositRepository struct {
	DB *gorm.DB
}

func NewDefaultDepositRepository(db *gorm.DB) *DefaultDepositRepository {
	return &DefaultDepositRepository{DB: db}
}

func (r *DefaultDepositRepository) CreateDeposit(deposit *domain.Deposit, gatewayTx *domain.GatewayTransaction) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		depositModel := mappers.ToGORMDeposit(deposit)
		if err := tx.Create(depositModel).Error; err != nil {
			return err
		}
		if gatewayTx != nil {
			txModel := mappers.ToGORMGatewayTransaction(gatewayTx)
			if err := tx.Create(txModel).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *DefaultDepositRepository) GetDepositByID(depositID string) (*domain.Deposit, error) {
	var model models.DepositModel
	if err := r.DB.Preload("GatewayTx").First(&model, "id = ?", depositID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDepositNotFound
		}
		return nil, err
	}
	return mappers.ToDomainDeposit(&model), nil
}

func (r *DefaultDepositRepository) GetDepositByGatewayOrderID(gatewayOrderID string) (*domain.Deposit, error) {
	var model models.DepositModel
	if err := r.DB.Preload("GatewayTx").First(&model, "gateway_order_id = ?", gatewayOrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDepositNotFound
		}
		return nil, err
	}
	return mappers.ToDomainDeposit(&model), nil
}

func (r *DefaultDepositRepository) GetDepositsByUserID(userID string, page, limit int64, filters domain.DepositFilters) ([]*domain.Deposit, int64, error) {
	var depositModels []models.DepositModel
	var total int64

	baseQuery := r.DB.Model(&models.DepositModel{}).
		Preload("GatewayTx").
		Where("user_id = ?", userID)

	if filters.Status != "" {
		baseQuery = baseQuery.Where("status = ?", filters.Status)
	}

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := baseQuery.
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&depositModels).Error; err != nil {
		return nil, 0, err
	}

	deposits := make([]*domain.Deposit, len(depositModels))
	for i, model := range depositModels {
		deposits[i] = mappers.ToDomainDeposit(&model)
	}

	return deposits, total, nil
}

func (r *DefaultDepositRepository) UpdateDepositStatusFrom(depositID string, from, to domain.DepositStatus) error {
	result := r.DB.Model(&models.DepositModel{}).
		Where("id = ? AND status = ?", depositID, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrDepositConflict
	}
	return nil
}

func (r *DefaultDepositRepository) FindPendingPastExpiry() ([]*domain.Deposit, error) {
	var depositModels []models.DepositModel
	if err := r.DB.Preload("GatewayTx").
		Joins("JOIN gateway_transactions ON deposits.gateway_order_id = gateway_transactions.gateway_order_id").
		Where("deposits.status = ?", domain.StatusPending).
		Where("gateway_transactions.expires_at < ?", time.Now()).
		Find(&depositModels).Error; err != nil {
		return nil, err
	}

	deposits := make([]*domain.Deposit, len(depositModels))
	for i, model := range depositModels {
		deposits[i] = mappers.ToDomainDeposit(&model)
	}

	return deposits, nil
}

// ReconcileDeposit is the single write path for external payment status.
// The deposit row is locked FOR UPDATE so the poll path, the webhook path
// and the expiry sweep serialize per deposit; the unique index on
// credit_events.deposit_id catches anything the lock does not.
func (r *DefaultDepositRepository) ReconcileDeposit(ctx context.Context, depositID string, decide domain.DecideFunc, credit domain.CreditFunc) (*domain.ReconcileOutcome, error) {
	outcome := &domain.ReconcileOutcome{}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.DepositModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&model, "id = ?", depositID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrDepositNotFound
			}
			return err
		}
		deposit := mappers.ToDomainDeposit(&model)

		decision, err := decide(deposit)
		if err != nil {
			return err
		}
		if decision == nil {
			outcome.Deposit = deposit
			return nil
		}

		if decision.IssueCredit {
			event := models.CreditEventModel{
				DepositID: deposit.ID,
				Login:     deposit.TradingAccountLogin,
				Amount:    deposit.Amount,
			}
			if err := tx.Create(&event).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return domain.ErrAlreadyCredited
				}
				return err
			}

			if creditErr := credit(deposit); creditErr != nil {
				// Payment genuinely happened: keep the approval, keep the
				// ledger row for manual remediation, never auto-retry.
				outcome.CreditErr = creditErr
				if err := tx.Model(&event).Updates(map[string]interface{}{
					"success": false,
					"error":   creditErr.Error(),
				}).Error; err != nil {
					return err
				}
			} else {
				outcome.CreditIssued = true
				if err := tx.Model(&event).Update("success", true).Error; err != nil {
					return err
				}
			}
		}

		updates := map[string]interface{}{
			"gateway_status": string(decision.ObservedStatus),
		}
		if decision.NewStatus != deposit.Status {
			updates["status"] = decision.NewStatus
			outcome.StatusChanged = true
		}
		if err := tx.Model(&models.DepositModel{}).
			Where("id = ?", deposit.ID).
			Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.GatewayTransactionModel{}).
			Where("gateway_order_id = ?", deposit.GatewayOrderID).
			Update("status", string(decision.ObservedStatus)).Error; err != nil {
			return err
		}

		deposit.Status = decision.NewStatus
		deposit.GatewayStatus = decision.ObservedStatus
		outcome.Deposit = deposit
		return nil
	})
	if err != nil {
		return nil, err
	}

	return outcome, nil
}

func (r *DefaultDepositRepository) GetCreditEventByDepositID(depositID string) (*domain.CreditEvent, error) {
	var model models.CreditEventModel
	if err := r.DB.First(&model, "deposit_id = ?", depositID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mappers.ToDomainCreditEvent(&model), nil
}
