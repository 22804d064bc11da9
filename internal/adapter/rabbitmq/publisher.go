package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/YelzhanWeb/pizzaform/internal/domain"
	"github.com/YelzhanWeb/pizzaform/internal/interfaces"
	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultExchange is the topic exchange orders are published to.
const DefaultExchange = "orders_topic"

type publisher struct {
	conn     Connection
	exchange string
}

// NewSubmitter publishes each order as a persistent JSON message.
func NewSubmitter(conn Connection, exchange string) interfaces.OrderSubmitter {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &publisher{conn: conn, exchange: exchange}
}

func (p *publisher) SubmitOrder(ctx context.Context, payload domain.OrderPayload) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = ch.PublishWithContext(ctx, p.exchange, RoutingKey(payload.Size), false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

// RoutingKey routes orders by pizza size, e.g. "form.m".
func RoutingKey(size domain.Size) string {
	return "form." + strings.ToLower(string(size))
}
