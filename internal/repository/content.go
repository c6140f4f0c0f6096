package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"paylock/internal/model"
)

type ContentRepository interface {
	Create(ctx context.Context, content *model.Content) error
	FindByID(ctx context.Context, id string) (*model.Content, error)
	List(ctx context.Context) ([]*model.Content, error)
	ListByCreator(ctx context.Context, creatorID string) ([]*model.Content, error)
	Delete(ctx context.Context, id string) error
}

type contentRepoImpl struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepoImpl{
		db: db,
	}
}

func (r *contentRepoImpl) Create(ctx context.Context, content *model.Content) error {
	return r.db.WithContext(ctx).Create(content).Error
}

func (r *contentRepoImpl) FindByID(ctx context.Context, id string) (*model.Content, error) {
	var content model.Content
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&content).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &content, nil
}

func (r *contentRepoImpl) List(ctx context.Context) ([]*model.Content, error) {
	var items []*model.Content
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&items).Error

	return items, err
}

func (r *contentRepoImpl) ListByCreator(ctx context.Context, creatorID string) ([]*model.Content, error) {
	var items []*model.Content
	err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&items).Error

	return items, err
}

// Delete removes the content item and its transactions in one
// transaction, matching the cascade rule of the data model.
func (r *contentRepoImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("content_id = ?", id).Delete(&model.Transaction{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&model.Content{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
