package http

import (
	"errors"
	"net/http"

	"quickbite/internal/core/application/usecases/commands"
	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/core/domain/model/wallet"
	"quickbite/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError maps a domain or application error onto an HTTP status and
// writes the JSON error body.
func respondError(ctx echo.Context, err error) error {
	code := statusOf(err)
	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, wallet.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, errs.ErrInvalidStateTransition),
		errors.Is(err, order.ErrAlreadyAssigned),
		errors.Is(err, commands.ErrOrderNotInRiderSearch):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrItemsAreRequired),
		errors.Is(err, commands.ErrCancellationReasonIsRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// badRequest writes a 400 with the given message.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
