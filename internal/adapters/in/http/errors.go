package http

import (
	"errors"
	"net/http"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the uniform error payload for all API routes.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError maps domain errors onto HTTP statuses. Unrecognized errors
// become a generic 500 so internals never leak to clients.
func respondError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired) || errors.Is(err, errs.ErrValueIsInvalid):
		return respondErrorStatus(ctx, http.StatusBadRequest, err)
	case errors.Is(err, ErrNoActor):
		return unauthorized(ctx, "not authenticated")
	case errors.Is(err, services.ErrForbidden):
		return respondErrorStatus(ctx, http.StatusForbidden, err)
	case errors.Is(err, errs.ErrObjectNotFound):
		return respondErrorStatus(ctx, http.StatusNotFound, err)
	case errors.Is(err, order.ErrInvalidTransition) ||
		errors.Is(err, delivery.ErrInvalidTransition) ||
		errors.Is(err, delivery.ErrAlreadyAssigned) ||
		errors.Is(err, delivery.ErrAlreadyTerminal):
		return respondErrorStatus(ctx, http.StatusConflict, err)
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal server error",
		})
	}
}

func respondErrorStatus(ctx echo.Context, status int, err error) error {
	return ctx.JSON(status, ErrorResponse{Code: status, Message: err.Error()})
}
