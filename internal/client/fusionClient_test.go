package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"paylock/internal/config"
	"paylock/internal/model"
)

func newTestClient(payURL, notifURL string) FusionClient {
	return NewFusionClient(&config.Fusion{
		PayURL:   payURL,
		NotifURL: notifURL,
		Timeout:  2 * time.Second,
	}, "https://paylock.test")
}

func TestInitiatePaymentBuildsProviderPayload(t *testing.T) {
	var got model.FusionInitiateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(model.FusionInitiateResponse{
			Statut: true,
			Token:  "tok-1",
			URL:    "https://pay.example/tok-1",
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	result, err := c.InitiatePayment(context.Background(), InitiateParams{
		Amount:    decimal.RequireFromString("1000"),
		Title:     "Photo exclusive",
		Phone:     "0102030405",
		PayerName: "Awa",
		ContentID: "content-1",
	})
	require.NoError(t, err)
	require.Equal(t, "tok-1", result.Token)
	require.Equal(t, "https://pay.example/tok-1", result.RedirectURL)

	require.True(t, got.TotalPrice.Equal(decimal.RequireFromString("1000")))
	require.Len(t, got.Article, 1)
	require.True(t, got.Article[0]["Photo exclusive"].Equal(decimal.RequireFromString("1000")))
	require.Len(t, got.PersonalInfo, 1)
	require.Equal(t, "content-1", got.PersonalInfo[0].ContentID)
	require.Equal(t, "0102030405", got.NumeroSend)
	require.Equal(t, "Awa", got.NomClient)
	require.Equal(t, "https://paylock.test/api/payment/webhook", got.WebhookURL)
}

func TestInitiatePaymentRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(model.FusionInitiateResponse{
			Statut:  false,
			Message: "numero invalide",
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	_, err := c.InitiatePayment(context.Background(), InitiateParams{
		Amount:    decimal.RequireFromString("1000"),
		Phone:     "0102030405",
		PayerName: "Awa",
		ContentID: "content-1",
	})
	require.ErrorIs(t, err, ErrGatewayRejected)
	require.Contains(t, err.Error(), "numero invalide")
}

func TestInitiatePaymentUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	_, err := c.InitiatePayment(context.Background(), InitiateParams{
		Amount:    decimal.RequireFromString("1000"),
		Phone:     "0102030405",
		PayerName: "Awa",
		ContentID: "content-1",
	})
	require.ErrorIs(t, err, ErrGatewayUnavailable)

	// Unreachable host: transport error, same kind.
	down := newTestClient("http://127.0.0.1:1", "http://127.0.0.1:1")
	_, err = down.InitiatePayment(context.Background(), InitiateParams{
		Amount:    decimal.RequireFromString("1000"),
		Phone:     "0102030405",
		PayerName: "Awa",
		ContentID: "content-1",
	})
	require.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestCheckStatusMapping(t *testing.T) {
	cases := []struct {
		outer    bool
		provider string
		want     PaymentStatus
	}{
		{true, "paid", StatusPaid},
		{false, "paid", StatusPending},
		{true, "failure", StatusFailed},
		{true, "cancelled", StatusCancelled},
		{true, "no paid", StatusPending},
		{true, "something new", StatusPending},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s_%v", tc.provider, tc.outer), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(model.FusionStatusResponse{
					Statut: tc.outer,
					Data:   model.FusionStatusData{Statut: tc.provider},
				})
			}))
			defer srv.Close()

			c := newTestClient(srv.URL, srv.URL)
			status, err := c.CheckStatus(context.Background(), "tok-1")
			require.NoError(t, err)
			require.Equal(t, tc.want, status)
		})
	}
}

func TestCheckStatusUnavailable(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1", "http://127.0.0.1:1")
	_, err := c.CheckStatus(context.Background(), "tok-1")
	require.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestParseWebhook(t *testing.T) {
	c := newTestClient("", "")

	body := []byte(`{"event":"payin.session.completed","tokenPay":"tok-1","personal_Info":[{"contentId":"content-1"}],"Montant":1500,"nomclient":"Awa","numeroSend":"0102030405"}`)
	payment, ok := c.ParseWebhook(body)
	require.True(t, ok)
	require.Equal(t, "content-1", payment.ContentID)
	require.Equal(t, "tok-1", payment.Token)
	require.Equal(t, "Awa", payment.PayerName)
	require.True(t, payment.Amount.Equal(decimal.RequireFromString("1500")))

	_, ok = c.ParseWebhook([]byte(`{"event":"payin.session.cancelled","tokenPay":"tok-1","personal_Info":[{"contentId":"content-1"}]}`))
	require.False(t, ok)

	_, ok = c.ParseWebhook([]byte(`{"event":"payin.session.completed","tokenPay":"tok-1"}`))
	require.False(t, ok)

	_, ok = c.ParseWebhook([]byte(`garbage`))
	require.False(t, ok)
}

func TestPaymentStatusTerminal(t *testing.T) {
	require.True(t, StatusPaid.Terminal())
	require.True(t, StatusFailed.Terminal())
	require.True(t, StatusCancelled.Terminal())
	require.False(t, StatusPending.Terminal())
}
