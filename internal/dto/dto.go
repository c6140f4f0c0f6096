package dto

import "github.com/shopspring/decimal"

type InitiatePaymentRequest struct {
	ContentID string `json:"content_id"`
	PayerName string `json:"payer_name"`
	Phone     string `json:"phone"`
}

type InitiatePaymentResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

type UnlockSessionResponse struct {
	SessionID   string `json:"session_id"`
	ContentID   string `json:"content_id"`
	State       string `json:"state"`
	RedirectURL string `json:"redirect_url,omitempty"`
	Error       string `json:"error,omitempty"`
}

type CreateContentRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	MediaBase64 string          `json:"media_base64"`
	MimeType    string          `json:"mime_type"`
	CreatorID   string          `json:"creator_id"`
}

type CreateWithdrawalRequest struct {
	UserID        string          `json:"user_id"`
	UserName      string          `json:"user_name"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Method        string          `json:"method"`
	AccountNumber string          `json:"account_number"`
}

type ResolveWithdrawalRequest struct {
	Status string `json:"status"`
}

type BalanceResponse struct {
	CreatorID string          `json:"creator_id"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AuthResponse struct {
	User  AuthUser `json:"user"`
	Token string   `json:"token"`
}
