package redis

import (
	"context"

	"github.com/go-redis/redis/v8"

	"notification-gateway/internal/domain"
	"notification-gateway/pkg/logger"
)

type EventSubscriber struct {
	client  *redis.Client
	channel string
	log     logger.Logger
}

func NewEventSubscriber(client *redis.Client, channel string, log logger.Logger) *EventSubscriber {
	return &EventSubscriber{
		client:  client,
		channel: channel,
		log:     log,
	}
}

// Subscribe consumes notification events until the context is cancelled.
// Malformed payloads are logged and skipped; handler failures are logged and
// never propagated back to the publisher.
func (s *EventSubscriber) Subscribe(ctx context.Context, handler domain.EventHandler) error {
	pubsub := s.client.Subscribe(ctx, s.channel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	s.log.Info("Subscribed to notification events", "channel", s.channel)

	for {
		select {
		case msg := <-ch:
			event, err := domain.ParseEvent([]byte(msg.Payload))
			if err != nil {
				s.log.Error("Failed to parse event", "payload", msg.Payload, "error", err)
				continue
			}

			if err := handler(event); err != nil {
				s.log.Error("Failed to handle event", "kind", event.Kind, "error", err)
			}

		case <-ctx.Done():
			s.log.Info("Event subscriber stopped")
			return ctx.Err()
		}
	}
}
