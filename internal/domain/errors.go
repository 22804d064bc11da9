package domain

import "errors"

var (
	ErrUnknownTopping   = errors.New("unknown topping")
	ErrSubmitInFlight   = errors.New("submission already in flight")
	ErrValidationFailed = errors.New("order validation failed")
	ErrOrderRejected    = errors.New("order rejected by endpoint")
	ErrInvalidCatalog   = errors.New("invalid topping catalog")
)
