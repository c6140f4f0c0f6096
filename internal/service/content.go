package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"paylock/internal/model"
	"paylock/internal/repository"
)

type ContentParams struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Currency    string
	MediaBase64 string
	MimeType    string
	CreatorID   string
}

type ContentService interface {
	Create(ctx context.Context, params ContentParams) (*model.Content, error)
	Get(ctx context.Context, id string) (*model.Content, error)
	List(ctx context.Context) ([]*model.Content, error)
	Delete(ctx context.Context, id string) error
}

type contentServiceImpl struct {
	contentRepo repository.ContentRepository
}

func NewContentService(contentRepo repository.ContentRepository) ContentService {
	return &contentServiceImpl{
		contentRepo: contentRepo,
	}
}

func (s *contentServiceImpl) Create(ctx context.Context, params ContentParams) (*model.Content, error) {
	if params.Title == "" {
		return nil, validationErr("title", "required")
	}
	if !params.Price.IsPositive() {
		return nil, validationErr("price", "must be positive")
	}
	if !supportedCurrency(params.Currency) {
		return nil, validationErr("currency", "unsupported currency")
	}
	if params.MimeType == "" {
		return nil, validationErr("mime_type", "required")
	}

	content := &model.Content{
		ID:          uuid.New().String(),
		Title:       params.Title,
		Description: params.Description,
		Price:       params.Price,
		Currency:    params.Currency,
		MediaBase64: params.MediaBase64,
		MimeType:    params.MimeType,
		CreatorID:   params.CreatorID,
	}

	if err := s.contentRepo.Create(ctx, content); err != nil {
		return nil, err
	}

	return content, nil
}

func (s *contentServiceImpl) Get(ctx context.Context, id string) (*model.Content, error) {
	return s.contentRepo.FindByID(ctx, id)
}

func (s *contentServiceImpl) List(ctx context.Context) ([]*model.Content, error) {
	return s.contentRepo.List(ctx)
}

func (s *contentServiceImpl) Delete(ctx context.Context, id string) error {
	return s.contentRepo.Delete(ctx, id)
}

func supportedCurrency(currency string) bool {
	for _, c := range model.SupportedCurrencies {
		if c == currency {
			return true
		}
	}
	return false
}
