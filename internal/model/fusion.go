package model

import "github.com/shopspring/decimal"

// MoneyFusion wire shapes. Field names follow the provider's API and
// must not be renamed.

type FusionPersonalInfo struct {
	ContentID string `json:"contentId"`
}

type FusionInitiateRequest struct {
	TotalPrice   decimal.Decimal              `json:"totalPrice"`
	Article      []map[string]decimal.Decimal `json:"article"`
	PersonalInfo []FusionPersonalInfo         `json:"personal_Info"`
	NumeroSend   string                       `json:"numeroSend"`
	NomClient    string                       `json:"nomclient"`
	ReturnURL    string                       `json:"return_url"`
	WebhookURL   string                       `json:"webhook_url"`
}

type FusionInitiateResponse struct {
	Statut  bool   `json:"statut"`
	Token   string `json:"token"`
	URL     string `json:"url"`
	Message string `json:"message"`
}

type FusionStatusData struct {
	Statut string `json:"statut"` // paid, failure, no paid, cancelled
}

type FusionStatusResponse struct {
	Statut bool             `json:"statut"`
	Data   FusionStatusData `json:"data"`
}

type FusionWebhookEvent struct {
	Event        string               `json:"event"`
	TokenPay     string               `json:"tokenPay"`
	PersonalInfo []FusionPersonalInfo `json:"personal_Info"`
	Montant      decimal.Decimal      `json:"Montant"`
	NomClient    string               `json:"nomclient"`
	NumeroSend   string               `json:"numeroSend"`
}

// The only event type that unlocks content.
const FusionEventSessionCompleted = "payin.session.completed"
