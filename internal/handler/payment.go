package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"paylock/internal/dto"
	"paylock/internal/service"
)

type PaymentHandler struct {
	paymentService service.PaymentService
	unlockManager  *service.UnlockManager
	log            *logrus.Logger
}

func NewPaymentHandler(paymentService service.PaymentService, unlockManager *service.UnlockManager, log *logrus.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		unlockManager:  unlockManager,
		log:            log,
	}
}

func (h *PaymentHandler) Initiate(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.InitiatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	intent, err := h.paymentService.InitiatePayment(ctx, req.ContentID, req.PayerName, req.Phone)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, &dto.InitiatePaymentResponse{
		Token:       intent.Token,
		RedirectURL: intent.RedirectURL,
	})
}

func (h *PaymentHandler) CheckStatus(c echo.Context) error {
	ctx := c.Request().Context()

	token := c.Param("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing payment token")
	}

	status, err := h.paymentService.CheckStatus(ctx, token)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": string(status)})
}

// Webhook always answers 200: the provider sends unrelated event types
// and retries on non-2xx, and a failed ledger write must not turn into
// a retry storm. Failures are logged and left to reconciliation.
func (h *PaymentHandler) Webhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	if err := h.paymentService.HandleWebhook(ctx, body); err != nil {
		h.log.WithError(err).Error("webhook processing failed")
	}

	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}

func (h *PaymentHandler) CreateSession(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.InitiatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	view, err := h.unlockManager.Begin(ctx, req.ContentID, req.PayerName, req.Phone)
	if err != nil {
		if service.IsValidation(err) {
			return toHTTPError(err)
		}
		// The session exists in failed state; hand it back with the
		// error message so the client can re-prompt.
		return c.JSON(http.StatusBadGateway, sessionResponse(view))
	}

	return c.JSON(http.StatusCreated, sessionResponse(view))
}

func (h *PaymentHandler) GetSession(c echo.Context) error {
	view, err := h.unlockManager.Get(c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, sessionResponse(view))
}

func (h *PaymentHandler) CloseSession(c echo.Context) error {
	if err := h.unlockManager.Close(c.Param("id")); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func sessionResponse(view service.SessionView) *dto.UnlockSessionResponse {
	return &dto.UnlockSessionResponse{
		SessionID:   view.ID,
		ContentID:   view.ContentID,
		State:       string(view.State),
		RedirectURL: view.RedirectURL,
		Error:       view.Error,
	}
}
