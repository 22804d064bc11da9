package interfaces

import (
	"context"

	"github.com/YelzhanWeb/pizzaform/internal/domain"
)

// OrderSubmitter delivers a validated order to the remote endpoint.
// Implementations: adapter/httpclient (HTTP POST) and adapter/rabbitmq (AMQP publish).
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, payload domain.OrderPayload) error
}

// OrderSubmitterFunc adapts a function to OrderSubmitter.
type OrderSubmitterFunc func(ctx context.Context, payload domain.OrderPayload) error

func (f OrderSubmitterFunc) SubmitOrder(ctx context.Context, payload domain.OrderPayload) error {
	return f(ctx, payload)
}
