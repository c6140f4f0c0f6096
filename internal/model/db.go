package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	WithdrawalStatusPending   = "pending"
	WithdrawalStatusCompleted = "completed"
	WithdrawalStatusRejected  = "rejected"
)

const (
	MethodBankTransfer = "bank_transfer"
	MethodWallet       = "wallet"
	MethodMobileMoney  = "mobile_money"
	MethodCrypto       = "crypto"
)

// Currencies accepted at content creation.
var SupportedCurrencies = []string{"XOF", "USD", "EUR"}

type User struct {
	ID           string `gorm:"primaryKey;size:64;not null"`
	Name         string `gorm:"size:128;not null"`
	Email        string `gorm:"size:128;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:128;not null"`
	Role         string `gorm:"size:16;not null"` // user, admin
	CreatedAt    time.Time
}

type Content struct {
	ID          string          `gorm:"primaryKey;size:64;not null"`
	Title       string          `gorm:"size:256;not null"`
	Description string          `gorm:"size:2048"`
	Price       decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Currency    string          `gorm:"size:8;not null"`
	MediaBase64 string          // inline media payload, data-URL body
	MimeType    string          `gorm:"size:64;not null"`
	CreatorID   string          `gorm:"size:64;index;not null"`
	CreatedAt   time.Time
}

type Transaction struct {
	ID           string          `gorm:"primaryKey;size:64;not null"`
	ContentID    string          `gorm:"size:64;index;not null"`
	ContentTitle string          `gorm:"size:256;not null"` // denormalized for listings
	Amount       decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	NetAmount    decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Currency     string          `gorm:"size:8;not null"`
	// BuyerMasked doubles as the dedupe key: MF-<correlation token>.
	// The unique index enforces at-most-once creation when the polling
	// and webhook paths race to record the same payment.
	BuyerMasked string `gorm:"size:128;uniqueIndex;not null"`
	CreatedAt   time.Time
}

type Withdrawal struct {
	ID            string          `gorm:"primaryKey;size:64;not null"`
	UserID        string          `gorm:"size:64;index;not null"`
	UserName      string          `gorm:"size:128;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Currency      string          `gorm:"size:8;not null"`
	Method        string          `gorm:"size:32;not null"` // bank_transfer, wallet, mobile_money, crypto
	AccountNumber string          `gorm:"size:128;not null"`
	Status        string          `gorm:"size:16;index;not null"` // pending, completed, rejected
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
