package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/YelzhanWeb/pizzaform/internal/domain"
)

type ErrorPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message,omitempty"`
}

// errorKind classifies errors returned by the form service.
func errorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrUnknownTopping):
		return "unknown_topping"
	case errors.Is(err, domain.ErrSubmitInFlight):
		return "in_flight"
	case errors.Is(err, domain.ErrValidationFailed):
		return "validation_failed"
	case errors.Is(err, domain.ErrOrderRejected):
		return "order_rejected"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "submit_failed"
	}
}

// httpStatus maps form service errors to response codes. Anything
// unclassified came from the outbound order request, timeouts included.
func httpStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrUnknownTopping):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSubmitInFlight):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidationFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

// errorPayload hides transport details; users get one generic message.
func errorPayload(err error) *ErrorPayload {
	if err == nil {
		return nil
	}
	kind := errorKind(err)
	msg := domain.FailureBanner
	switch kind {
	case "unknown_topping", "in_flight":
		msg = err.Error()
	}
	return &ErrorPayload{Kind: kind, Message: msg}
}
