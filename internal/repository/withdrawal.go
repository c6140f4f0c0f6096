package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"paylock/internal/model"
)

type WithdrawalRepository interface {
	Create(ctx context.Context, w *model.Withdrawal) error
	FindByID(ctx context.Context, id string) (*model.Withdrawal, error)
	List(ctx context.Context) ([]*model.Withdrawal, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Withdrawal, error)
	// UpdateStatus moves a pending withdrawal to completed or rejected.
	// A withdrawal that already left pending returns
	// ErrTerminalWithdrawal; an unknown id returns ErrNotFound.
	UpdateStatus(ctx context.Context, id, status string) error
}

type withdrawalRepoImpl struct {
	db *gorm.DB
}

func NewWithdrawalRepository(db *gorm.DB) WithdrawalRepository {
	return &withdrawalRepoImpl{
		db: db,
	}
}

func (r *withdrawalRepoImpl) Create(ctx context.Context, w *model.Withdrawal) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *withdrawalRepoImpl) FindByID(ctx context.Context, id string) (*model.Withdrawal, error) {
	var w model.Withdrawal
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&w).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &w, nil
}

func (r *withdrawalRepoImpl) List(ctx context.Context) ([]*model.Withdrawal, error) {
	var ws []*model.Withdrawal
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&ws).Error

	return ws, err
}

func (r *withdrawalRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.Withdrawal, error) {
	var ws []*model.Withdrawal
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ws).Error

	return ws, err
}

func (r *withdrawalRepoImpl) UpdateStatus(ctx context.Context, id, status string) error {
	result := r.db.WithContext(ctx).Model(&model.Withdrawal{}).
		Where("id = ? AND status = ?", id, model.WithdrawalStatusPending).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the id is unknown or the withdrawal is terminal.
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return ErrTerminalWithdrawal
	}
	return nil
}
