package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-box-office/internal/apperror"
)

// CachePurger drops cached catalog responses after a mutation.
type CachePurger interface {
	Purge(ctx context.Context)
}

func purge(c echo.Context, p CachePurger) {
	if p != nil {
		p.Purge(c.Request().Context())
	}
}

// statusFor maps a rejection kind to its HTTP status.
func statusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.InvalidRequest:
		return http.StatusBadRequest
	case apperror.SeatUnavailable, apperror.Conflict:
		return http.StatusConflict
	case apperror.PaymentDeclined:
		return http.StatusPaymentRequired
	case apperror.InvalidInput:
		return http.StatusUnprocessableEntity
	case apperror.NotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// fail writes err as a JSON error body.  Errors that carry no kind are
// reported as 500 without leaking their text.
func fail(c echo.Context, err error) error {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	body := echo.Map{
		"error":   strings.ToLower(string(appErr.Kind)),
		"message": appErr.Reason,
	}
	if len(appErr.Seats) > 0 {
		body["seats"] = appErr.Seats
	}
	return c.JSON(statusFor(appErr.Kind), body)
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": msg})
}

// movieID reads and trims the :id path parameter.
func movieID(c echo.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("id"))
	return id, id != ""
}
