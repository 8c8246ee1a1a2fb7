package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"agromarket/internal/core/application/usecases/commands"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/domain/model/product"
	"agromarket/internal/pkg/errs"
)

// statusFor maps domain errors onto HTTP status codes. Anything unmapped is
// treated as an internal failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrNotOrderOwner),
		errors.Is(err, order.ErrNotAssignee):
		return http.StatusForbidden
	case errors.Is(err, order.ErrOrderAlreadyAssigned),
		errors.Is(err, order.ErrOrderChanged),
		errors.Is(err, commands.ErrLabourerHasActiveOrder):
		return http.StatusConflict
	case errors.Is(err, order.ErrOrderIsTerminal),
		errors.Is(err, order.ErrBackwardTransition),
		errors.Is(err, product.ErrInsufficientStock),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func domainError(c echo.Context, err error) error {
	code := statusFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "Internal server error"
	}
	return c.JSON(code, errorResponse{Code: code, Message: message})
}
