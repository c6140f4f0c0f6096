package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"paylock/internal/dto"
	"paylock/internal/service"
)

type LedgerHandler struct {
	ledgerService service.LedgerService
}

func NewLedgerHandler(ledgerService service.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
	}
}

func (h *LedgerHandler) ListTransactions(c echo.Context) error {
	ctx := c.Request().Context()

	if creatorID := c.QueryParam("creator_id"); creatorID != "" {
		txs, err := h.ledgerService.ListTransactionsByCreator(ctx, creatorID)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, txs)
	}

	txs, err := h.ledgerService.ListTransactions(ctx)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, txs)
}

func (h *LedgerHandler) GetBalance(c echo.Context) error {
	ctx := c.Request().Context()

	creatorID := c.Param("creatorId")
	balance, err := h.ledgerService.ComputeBalance(ctx, creatorID)
	if err != nil {
		return toHTTPError(err)
	}

	// Display floor: a creator never sees a negative balance even when
	// accepted withdrawals exceed recorded earnings.
	if balance.IsNegative() {
		balance = decimal.Zero
	}

	return c.JSON(http.StatusOK, &dto.BalanceResponse{
		CreatorID: creatorID,
		Balance:   balance,
		Currency:  "XOF",
	})
}

func (h *LedgerHandler) CreateWithdrawal(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateWithdrawalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	w, err := h.ledgerService.RequestWithdrawal(ctx, service.WithdrawalParams{
		UserID:        req.UserID,
		UserName:      req.UserName,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Method:        req.Method,
		AccountNumber: req.AccountNumber,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, w)
}

func (h *LedgerHandler) ListWithdrawals(c echo.Context) error {
	ctx := c.Request().Context()

	if userID := c.QueryParam("user_id"); userID != "" {
		ws, err := h.ledgerService.ListWithdrawalsByUser(ctx, userID)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, ws)
	}

	ws, err := h.ledgerService.ListWithdrawals(ctx)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, ws)
}

func (h *LedgerHandler) ResolveWithdrawal(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ResolveWithdrawalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.ledgerService.ResolveWithdrawal(ctx, c.Param("id"), req.Status); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"status":  req.Status,
	})
}
