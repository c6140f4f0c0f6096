package service

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"paylock/internal/client"
	"paylock/internal/config"
	"paylock/internal/model"
	"paylock/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// One connection: every pooled conn of an in-memory sqlite is a
	// separate database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Content{},
		&model.Transaction{},
		&model.Withdrawal{},
	))

	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeFusionClient scripts initiate and status answers; webhook
// parsing is delegated to the real implementation so the wire format
// stays under test.
type fakeFusionClient struct {
	real client.FusionClient

	initiateResult *client.InitiateResult
	initiateErr    error
	status         client.PaymentStatus
	statusErr      error
}

func newFakeFusionClient() *fakeFusionClient {
	return &fakeFusionClient{
		real: client.NewFusionClient(&config.Fusion{}, "http://paylock.test"),
		initiateResult: &client.InitiateResult{
			Token:       "token-1",
			RedirectURL: "https://pay.example/token-1",
		},
		status: client.StatusPending,
	}
}

func (f *fakeFusionClient) InitiatePayment(ctx context.Context, params client.InitiateParams) (*client.InitiateResult, error) {
	if f.initiateErr != nil {
		return nil, f.initiateErr
	}
	return f.initiateResult, nil
}

func (f *fakeFusionClient) CheckStatus(ctx context.Context, token string) (client.PaymentStatus, error) {
	if f.statusErr != nil {
		return client.StatusPending, f.statusErr
	}
	return f.status, nil
}

func (f *fakeFusionClient) ParseWebhook(body []byte) (*client.WebhookPayment, bool) {
	return f.real.ParseWebhook(body)
}

func seedContent(t *testing.T, db *gorm.DB, id, price, currency string) *model.Content {
	t.Helper()
	content := &model.Content{
		ID:        id,
		Title:     "Contenu premium",
		Price:     decimal.RequireFromString(price),
		Currency:  currency,
		MimeType:  "image/png",
		CreatorID: "creator-1",
	}
	require.NoError(t, repository.NewContentRepository(db).Create(context.Background(), content))
	return content
}

func TestRecordPaymentTakesTenPercentFee(t *testing.T) {
	db := newTestDB(t)
	fusion := newFakeFusionClient()
	svc := NewPaymentService(fusion, repository.NewContentRepository(db), repository.NewTransactionRepository(db), newTestLogger())

	seedContent(t, db, "content-1", "10.00", "USD")

	tx, err := svc.RecordPayment(context.Background(), "content-1", "token-1", decimal.RequireFromString("10.00"), "Awa")
	require.NoError(t, err)

	require.True(t, tx.NetAmount.Equal(decimal.RequireFromString("9.00")),
		"expected net 9.00, got %s", tx.NetAmount)
	require.True(t, tx.Amount.Equal(decimal.RequireFromString("10.00")))
	require.Equal(t, "USD", tx.Currency)
	require.Equal(t, "MF-token-1", tx.BuyerMasked)
}

func TestDualPathRecordsSingleTransaction(t *testing.T) {
	db := newTestDB(t)
	fusion := newFakeFusionClient()
	txRepo := repository.NewTransactionRepository(db)
	svc := NewPaymentService(fusion, repository.NewContentRepository(db), txRepo, newTestLogger())
	ctx := context.Background()

	seedContent(t, db, "content-1", "1000", "XOF")

	// Polling path resolves first.
	_, err := svc.RecordPayment(ctx, "content-1", "token-1", decimal.RequireFromString("1000"), "Awa")
	require.NoError(t, err)

	// Webhook delivers the same payment; must be swallowed silently.
	webhook := []byte(fmt.Sprintf(
		`{"event":%q,"tokenPay":"token-1","personal_Info":[{"contentId":"content-1"}],"Montant":1000,"nomclient":"Awa","numeroSend":"0102030405"}`,
		model.FusionEventSessionCompleted,
	))
	require.NoError(t, svc.HandleWebhook(ctx, webhook))

	var count int64
	require.NoError(t, db.Model(&model.Transaction{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestWebhookRecordsWhenClientAbandonedPolling(t *testing.T) {
	db := newTestDB(t)
	fusion := newFakeFusionClient()
	svc := NewPaymentService(fusion, repository.NewContentRepository(db), repository.NewTransactionRepository(db), newTestLogger())
	ctx := context.Background()

	seedContent(t, db, "content-1", "2500", "XOF")

	webhook := []byte(fmt.Sprintf(
		`{"event":%q,"tokenPay":"token-9","personal_Info":[{"contentId":"content-1"}],"Montant":2500,"nomclient":"Koffi","numeroSend":"0102030405"}`,
		model.FusionEventSessionCompleted,
	))
	require.NoError(t, svc.HandleWebhook(ctx, webhook))

	tx, err := repository.NewTransactionRepository(db).FindByDedupeKey(ctx, "MF-token-9")
	require.NoError(t, err)
	require.True(t, tx.NetAmount.Equal(decimal.RequireFromString("2250")))
	require.Equal(t, "Contenu premium", tx.ContentTitle)
}

func TestWebhookIgnoresUnrelatedEvents(t *testing.T) {
	db := newTestDB(t)
	fusion := newFakeFusionClient()
	svc := NewPaymentService(fusion, repository.NewContentRepository(db), repository.NewTransactionRepository(db), newTestLogger())
	ctx := context.Background()

	cases := []string{
		`{"event":"payin.session.pending","tokenPay":"t","personal_Info":[{"contentId":"c"}],"Montant":100}`,
		`{"event":"payin.session.completed","tokenPay":"t","Montant":100}`,
		`{"event":"payin.session.completed","tokenPay":"t","personal_Info":[{}],"Montant":100}`,
		`not even json`,
	}
	for _, body := range cases {
		require.NoError(t, svc.HandleWebhook(ctx, []byte(body)))
	}

	var count int64
	require.NoError(t, db.Model(&model.Transaction{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestWebhookFallsBackWhenContentGone(t *testing.T) {
	db := newTestDB(t)
	fusion := newFakeFusionClient()
	svc := NewPaymentService(fusion, repository.NewContentRepository(db), repository.NewTransactionRepository(db), newTestLogger())
	ctx := context.Background()

	webhook := []byte(fmt.Sprintf(
		`{"event":%q,"tokenPay":"token-5","personal_Info":[{"contentId":"gone"}],"Montant":800,"nomclient":"Koffi","numeroSend":"01"}`,
		model.FusionEventSessionCompleted,
	))
	require.NoError(t, svc.HandleWebhook(ctx, webhook))

	tx, err := repository.NewTransactionRepository(db).FindByDedupeKey(ctx, "MF-token-5")
	require.NoError(t, err)
	require.Equal(t, "Paiement Koffi", tx.ContentTitle)
	require.Equal(t, "XOF", tx.Currency)
}

func TestInitiatePaymentValidation(t *testing.T) {
	db := newTestDB(t)
	fusion := newFakeFusionClient()
	svc := NewPaymentService(fusion, repository.NewContentRepository(db), repository.NewTransactionRepository(db), newTestLogger())
	ctx := context.Background()

	seedContent(t, db, "content-1", "1000", "XOF")

	_, err := svc.InitiatePayment(ctx, "content-1", "", "0102030405")
	require.True(t, IsValidation(err))

	_, err = svc.InitiatePayment(ctx, "content-1", "Awa", "")
	require.True(t, IsValidation(err))

	_, err = svc.InitiatePayment(ctx, "missing", "Awa", "0102030405")
	require.ErrorIs(t, err, repository.ErrNotFound)

	intent, err := svc.InitiatePayment(ctx, "content-1", "Awa", "0102030405")
	require.NoError(t, err)
	require.Equal(t, "token-1", intent.Token)
	require.Equal(t, "https://pay.example/token-1", intent.RedirectURL)
	require.True(t, intent.Amount.Equal(decimal.RequireFromString("1000")))
}

func TestInitiatePaymentGatewayRejected(t *testing.T) {
	db := newTestDB(t)
	fusion := newFakeFusionClient()
	fusion.initiateErr = fmt.Errorf("%w: solde insuffisant", client.ErrGatewayRejected)
	svc := NewPaymentService(fusion, repository.NewContentRepository(db), repository.NewTransactionRepository(db), newTestLogger())

	seedContent(t, db, "content-1", "1000", "XOF")

	_, err := svc.InitiatePayment(context.Background(), "content-1", "Awa", "0102030405")
	require.ErrorIs(t, err, client.ErrGatewayRejected)
}
