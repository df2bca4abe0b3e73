package repository

import (
	"context"
	"errors"

	"github.com/finbridge/broker-funding-service/internal/domain"
	"github.com/finbridge/broker-funding-service/internal/infrastructure/postgres/mappers"
	"github.com/finbridge/broker-funding-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultWithdrawalRepository struct {
	DB *gorm.DB
}

func NewDefaultWithdrawalRepository(db *gorm.DB) *DefaultWithdrawalRepository {
	return &DefaultWithdrawalRepository{DB: db}
}

func (r *DefaultWithdrawalRepository) CreateWithdrawal(withdrawal *domain.Withdrawal) error {
	model := mappers.ToGORMWithdrawal(withdrawal)
	return r.DB.Create(model).Error
}

func (r *DefaultWithdrawalRepository) GetWithdrawalByID(withdrawalID string) (*domain.Withdrawal, error) {
	var model models.WithdrawalModel
	if err := r.DB.First(&model, "id = ?", withdrawalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWithdrawalNotFound
		}
		return nil, err
	}
	return mappers.ToDomainWithdrawal(&model), nil
}

func (r *DefaultWithdrawalRepository) GetWithdrawalsByUserID(userID string, page, limit int64) ([]*domain.Withdrawal, int64, error) {
	var withdrawalModels []models.WithdrawalModel
	var total int64

	baseQuery := r.DB.Model(&models.WithdrawalModel{}).Where("user_id = ?", userID)

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := baseQuery.
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&withdrawalModels).Error; err != nil {
		return nil, 0, err
	}

	withdrawals := make([]*domain.Withdrawal, len(withdrawalModels))
	for i, model := range withdrawalModels {
		withdrawals[i] = mappers.ToDomainWithdrawal(&model)
	}

	return withdrawals, total, nil
}

func (r *DefaultWithdrawalRepository) ListWithdrawals(page, limit int64, filters domain.WithdrawalFilters) ([]*domain.Withdrawal, int64, error) {
	var withdrawalModels []models.WithdrawalModel
	var total int64

	baseQuery := r.DB.Model(&models.WithdrawalModel{})
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
		Find(&withdrawalModels).Error; err != nil {
		return nil, 0, err
	}

	withdrawals := make([]*domain.Withdrawal, len(withdrawalModels))
	for i, model := range withdrawalModels {
		withdrawals[i] = mappers.ToDomainWithdrawal(&model)
	}

	return withdrawals, total, nil
}

// ApproveWithdrawal is the only path that debits an account: the row is
// locked FOR UPDATE so two concurrent approvals serialize, the second
// one seeing a non-pending status instead of issuing a second debit. A
// failed debit rolls the transaction back and the request stays pending.
func (r *DefaultWithdrawalRepository) ApproveWithdrawal(ctx context.Context, withdrawalID string, debit domain.DebitFunc) (*domain.Withdrawal, error) {
	var withdrawal *domain.Withdrawal

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.WithdrawalModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&model, "id = ?", withdrawalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrWithdrawalNotFound
			}
			return err
		}
		withdrawal = mappers.ToDomainWithdrawal(&model)

		if withdrawal.Status != domain.WithdrawalPending {
			return domain.ErrWithdrawalConflict
		}

		if err := debit(withdrawal); err != nil {
			return err
		}

		if err := tx.Model(&models.WithdrawalModel{}).
			Where("id = ?", withdrawalID).
			Update("status", domain.WithdrawalApproved).Error; err != nil {
			return err
		}

		withdrawal.Status = domain.WithdrawalApproved
		return nil
	})
	if err != nil {
		return nil, err
	}

	return withdrawal, nil
}

func (r *DefaultWithdrawalRepository) UpdateWithdrawalStatusFrom(withdrawalID string, from, to domain.WithdrawalStatus, reason string) error {
	updates := map[string]interface{}{"status": to}
	if reason != "" {
		updates["reject_reason"] = reason
	}
	result := r.DB.Model(&models.WithdrawalModel{}).
		Where("id = ? AND status = ?", withdrawalID, from).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrWithdrawalConflict
	}
	return nil
}
