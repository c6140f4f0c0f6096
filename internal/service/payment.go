package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"paylock/internal/client"
	"paylock/internal/model"
	"paylock/internal/repository"
)

// feeRate is the creator's share of a gross payment. The platform
// keeps the remaining 10%.
var feeRate = decimal.New(9, -1)

// DedupeKey builds the correlation-token dedupe key recorded in the
// masked-buyer field.
func DedupeKey(token string) string {
	return "MF-" + token
}

// PaymentIntent is what an initiated attempt hands back: the
// provider's correlation token, the URL the buyer completes the
// payment on, and the gross amount being charged.
type PaymentIntent struct {
	Token       string
	RedirectURL string
	Amount      decimal.Decimal
}

type PaymentService interface {
	// InitiatePayment starts a payment attempt for a content item and
	// returns the provider's correlation token plus the redirect URL
	// the buyer must complete the payment on.
	InitiatePayment(ctx context.Context, contentID, payerName, phone string) (*PaymentIntent, error)
	CheckStatus(ctx context.Context, token string) (client.PaymentStatus, error)
	// RecordPayment writes the confirmed payment to the ledger, at most
	// once per correlation token. The polling loop and the webhook both
	// call it; the loser gets repository.ErrDuplicateTransaction.
	RecordPayment(ctx context.Context, contentID, token string, gross decimal.Decimal, payerName string) (*model.Transaction, error)
	HandleWebhook(ctx context.Context, body []byte) error
}

type paymentServiceImpl struct {
	fusionClient    client.FusionClient
	contentRepo     repository.ContentRepository
	transactionRepo repository.TransactionRepository
	log             *logrus.Logger
}

func NewPaymentService(
	fusionClient client.FusionClient,
	contentRepo repository.ContentRepository,
	transactionRepo repository.TransactionRepository,
	log *logrus.Logger,
) PaymentService {
	return &paymentServiceImpl{
		fusionClient:    fusionClient,
		contentRepo:     contentRepo,
		transactionRepo: transactionRepo,
		log:             log,
	}
}

func (s *paymentServiceImpl) InitiatePayment(ctx context.Context, contentID, payerName, phone string) (*PaymentIntent, error) {
	if payerName == "" {
		return nil, validationErr("payer_name", "required")
	}
	if phone == "" {
		return nil, validationErr("phone", "required")
	}

	content, err := s.contentRepo.FindByID(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("look up content: %w", err)
	}

	result, err := s.fusionClient.InitiatePayment(ctx, client.InitiateParams{
		Amount:    content.Price,
		Title:     content.Title,
		Phone:     phone,
		PayerName: payerName,
		ContentID: content.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("fusion initiate: %w", err)
	}

	return &PaymentIntent{
		Token:       result.Token,
		RedirectURL: result.RedirectURL,
		Amount:      content.Price,
	}, nil
}

func (s *paymentServiceImpl) CheckStatus(ctx context.Context, token string) (client.PaymentStatus, error) {
	return s.fusionClient.CheckStatus(ctx, token)
}

func (s *paymentServiceImpl) RecordPayment(ctx context.Context, contentID, token string, gross decimal.Decimal, payerName string) (*model.Transaction, error) {
	title := fmt.Sprintf("Paiement %s", payerName)
	currency := "XOF"

	content, err := s.contentRepo.FindByID(ctx, contentID)
	if err == nil {
		title = content.Title
		currency = content.Currency
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("look up content: %w", err)
	}

	tx := &model.Transaction{
		ID:           uuid.New().String(),
		ContentID:    contentID,
		ContentTitle: title,
		Amount:       gross,
		NetAmount:    gross.Mul(feeRate),
		Currency:     currency,
		BuyerMasked:  DedupeKey(token),
	}

	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"content_id": contentID,
		"token":      token,
		"amount":     gross.String(),
	}).Info("transaction recorded")

	return tx, nil
}

// HandleWebhook ingests a provider callback. Unknown event types and
// malformed payloads are ignored, and a lost dedupe race is not an
// error: the other path already recorded the payment. The webhook
// never touches session state; its job is to make the ledger
// authoritative even if the buyer abandoned polling.
func (s *paymentServiceImpl) HandleWebhook(ctx context.Context, body []byte) error {
	payment, ok := s.fusionClient.ParseWebhook(body)
	if !ok {
		s.log.Debug("ignoring webhook: not an actionable payment event")
		return nil
	}

	_, err := s.RecordPayment(ctx, payment.ContentID, payment.Token, payment.Amount, payment.PayerName)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateTransaction) {
			s.log.WithField("token", payment.Token).Info("webhook: transaction already recorded, skipping")
			return nil
		}
		return fmt.Errorf("record webhook payment: %w", err)
	}

	return nil
}
