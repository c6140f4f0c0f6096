package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"paylock/internal/config"
	"paylock/internal/model"
)

// ErrGatewayUnavailable covers transport failures and non-2xx replies.
// Callers treat it as transient.
var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

// ErrGatewayRejected means the provider answered but declined the
// request outright (statut=false). Terminal for the attempt.
var ErrGatewayRejected = errors.New("payment gateway rejected request")

type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusPaid      PaymentStatus = "paid"
	StatusFailed    PaymentStatus = "failed"
	StatusCancelled PaymentStatus = "cancelled"
)

// Terminal reports whether no further polling can change the status.
func (s PaymentStatus) Terminal() bool {
	return s == StatusPaid || s == StatusFailed || s == StatusCancelled
}

type InitiateParams struct {
	Amount    decimal.Decimal
	Title     string
	Phone     string
	PayerName string
	ContentID string
}

type InitiateResult struct {
	Token       string
	RedirectURL string
}

type WebhookPayment struct {
	ContentID string
	Token     string
	Amount    decimal.Decimal
	PayerName string
}

type FusionClient interface {
	InitiatePayment(ctx context.Context, params InitiateParams) (*InitiateResult, error)
	CheckStatus(ctx context.Context, token string) (PaymentStatus, error)
	ParseWebhook(body []byte) (*WebhookPayment, bool)
}

type fusionClientImpl struct {
	httpClient *resty.Client
	payURL     string
	notifURL   string
	baseURL    string
}

func NewFusionClient(fusionCfg *config.Fusion, serviceBaseURL string) FusionClient {
	return &fusionClientImpl{
		httpClient: resty.New().SetTimeout(fusionCfg.Timeout),
		payURL:     fusionCfg.PayURL,
		notifURL:   fusionCfg.NotifURL,
		baseURL:    serviceBaseURL,
	}
}

func (c *fusionClientImpl) InitiatePayment(ctx context.Context, params InitiateParams) (*InitiateResult, error) {
	title := params.Title
	if title == "" {
		title = "Contenu Premium"
	}

	payload := model.FusionInitiateRequest{
		TotalPrice:   params.Amount,
		Article:      []map[string]decimal.Decimal{{title: params.Amount}},
		PersonalInfo: []model.FusionPersonalInfo{{ContentID: params.ContentID}},
		NumeroSend:   params.Phone,
		NomClient:    params.PayerName,
		ReturnURL:    c.baseURL,
		WebhookURL:   fmt.Sprintf("%s/api/payment/webhook", c.baseURL),
	}

	var result model.FusionInitiateResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&result).
		Post(c.payURL)
	if err != nil {
		return nil, fmt.Errorf("%w: initiate: %v", ErrGatewayUnavailable, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: initiate returned %d", ErrGatewayUnavailable, resp.StatusCode())
	}

	if !result.Statut || result.URL == "" {
		msg := result.Message
		if msg == "" {
			msg = "provider declined the payment request"
		}
		return nil, fmt.Errorf("%w: %s", ErrGatewayRejected, msg)
	}

	return &InitiateResult{
		Token:       result.Token,
		RedirectURL: result.URL,
	}, nil
}

func (c *fusionClientImpl) CheckStatus(ctx context.Context, token string) (PaymentStatus, error) {
	var result model.FusionStatusResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&result).
		Get(fmt.Sprintf("%s/%s", c.notifURL, token))
	if err != nil {
		return StatusPending, fmt.Errorf("%w: status check: %v", ErrGatewayUnavailable, err)
	}
	if !resp.IsSuccess() {
		return StatusPending, fmt.Errorf("%w: status check returned %d", ErrGatewayUnavailable, resp.StatusCode())
	}

	switch result.Data.Statut {
	case "paid":
		if result.Statut {
			return StatusPaid, nil
		}
		return StatusPending, nil
	case "failure":
		return StatusFailed, nil
	case "cancelled":
		return StatusCancelled, nil
	default:
		// "no paid" and anything unrecognized: keep waiting.
		return StatusPending, nil
	}
}

// ParseWebhook extracts the payment facts from a provider callback.
// Only payin.session.completed events carrying a contentId are
// actionable; everything else returns ok=false and is ignored.
func (c *fusionClientImpl) ParseWebhook(body []byte) (*WebhookPayment, bool) {
	var event model.FusionWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, false
	}
	if event.Event != model.FusionEventSessionCompleted {
		return nil, false
	}
	if len(event.PersonalInfo) == 0 || event.PersonalInfo[0].ContentID == "" {
		return nil, false
	}

	return &WebhookPayment{
		ContentID: event.PersonalInfo[0].ContentID,
		Token:     event.TokenPay,
		Amount:    event.Montant,
		PayerName: event.NomClient,
	}, true
}
