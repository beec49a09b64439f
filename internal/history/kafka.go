package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	kafkaGo "github.com/segmentio/kafka-go"

	"github.com/terracart/terracart/internal/logging"
)

// OrderEvent is the payload published by the checkout flow when an order is
// recorded. Only the fields this core reacts to are decoded.
type OrderEvent struct {
	OrderID string `json:"orderId"`
	UserID  string `json:"userId"`
}

// Invalidator drops cached reports for a user. It is called once per
// consumed order event so stale report caches never outlive a new purchase.
type Invalidator interface {
	InvalidateUser(ctx context.Context, userID string) error
}

// decodeOrderEvent parses an order-event payload and rejects events that
// cannot drive invalidation. Order IDs are UUIDs issued by the checkout
// flow; anything else is a foreign or corrupted message.
func decodeOrderEvent(payload []byte) (OrderEvent, error) {
	var event OrderEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return OrderEvent{}, fmt.Errorf("failed to decode order event: %w", err)
	}
	if _, err := uuid.Parse(event.OrderID); err != nil {
		return OrderEvent{}, fmt.Errorf("order event has a malformed order id %q: %w", event.OrderID, err)
	}
	if event.UserID == "" {
		return OrderEvent{}, fmt.Errorf("order event %q has no user", event.OrderID)
	}
	return event, nil
}

// OrderConsumer tails the order-event topic and eagerly invalidates report
// caches for the ordering user.
type OrderConsumer struct {
	reader      *kafkaGo.Reader
	invalidator Invalidator
}

// NewOrderConsumer builds a consumer for the given brokers, topic, and
// consumer group.
func NewOrderConsumer(brokers []string, topic, groupID string, invalidator Invalidator) *OrderConsumer {
	return &OrderConsumer{
		reader: kafkaGo.NewReader(kafkaGo.ReaderConfig{
			Brokers: brokers,
			Topic:   topic,
			GroupID: groupID,
		}),
		invalidator: invalidator,
	}
}

// Run consumes order events until the context is canceled. Malformed
// payloads and invalidation failures are logged and skipped; the consumer
// keeps reading.
func (c *OrderConsumer) Run(ctx context.Context) error {
	logger := logging.ComponentLogger(logging.FromContext(ctx), "order_consumer")

	defer func() {
		if err := c.reader.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close order-event reader")
		}
	}()

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info().Msg("order-event consumer shutting down")
				return nil
			}
			return fmt.Errorf("failed to read order event: %w", err)
		}

		event, err := decodeOrderEvent(msg.Value)
		if err != nil {
			logger.Warn().Err(err).Msg("skipping malformed order event")
			continue
		}

		if err := c.invalidator.InvalidateUser(ctx, event.UserID); err != nil {
			logger.Error().Err(err).
				Str("user_id", event.UserID).
				Msg("failed to invalidate report cache")
			continue
		}

		logger.Debug().
			Str("user_id", event.UserID).
			Str("order_id", event.OrderID).
			Msg("invalidated report cache for new order")
	}
}
