package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"paylock/internal/client"
	"paylock/internal/repository"
	"paylock/internal/service"
)

// toHTTPError maps service and store errors onto HTTP statuses so the
// handlers can stay thin.
func toHTTPError(err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Error())
	case errors.Is(err, repository.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrSessionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	case errors.Is(err, repository.ErrTerminalWithdrawal):
		return echo.NewHTTPError(http.StatusConflict, "withdrawal already resolved")
	case errors.Is(err, repository.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusBadRequest, "Un compte avec cet email existe déjà. Essayez de vous connecter.")
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, client.ErrGatewayRejected):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	case errors.Is(err, client.ErrGatewayUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "payment provider unreachable, retry")
	default:
		return err
	}
}
