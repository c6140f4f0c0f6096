package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"paylock/internal/model"
)

type TransactionRepository interface {
	// Create inserts the transaction unless its dedupe key is already
	// taken, in which case ErrDuplicateTransaction is returned. The
	// check and the insert are a single statement, so the polling and
	// webhook paths cannot both win.
	Create(ctx context.Context, tx *model.Transaction) error
	FindByDedupeKey(ctx context.Context, key string) (*model.Transaction, error)
	List(ctx context.Context) ([]*model.Transaction, error)
	ListByCreator(ctx context.Context, creatorID string) ([]*model.Transaction, error)
}

type transactionRepoImpl struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepoImpl{
		db: db,
	}
}

func (r *transactionRepoImpl) Create(ctx context.Context, tx *model.Transaction) error {
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "buyer_masked"}},
		DoNothing: true,
	}).Create(tx)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDuplicateTransaction
	}
	return nil
}

func (r *transactionRepoImpl) FindByDedupeKey(ctx context.Context, key string) (*model.Transaction, error) {
	var tx model.Transaction
	err := r.db.WithContext(ctx).
		Where("buyer_masked = ?", key).
		First(&tx).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &tx, nil
}

func (r *transactionRepoImpl) List(ctx context.Context) ([]*model.Transaction, error) {
	var txs []*model.Transaction
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&txs).Error

	return txs, err
}

func (r *transactionRepoImpl) ListByCreator(ctx context.Context, creatorID string) ([]*model.Transaction, error) {
	var txs []*model.Transaction
	err := r.db.WithContext(ctx).
		Joins("JOIN contents ON contents.id = transactions.content_id").
		Where("contents.creator_id = ?", creatorID).
		Order("transactions.created_at DESC").
		Find(&txs).Error

	return txs, err
}
