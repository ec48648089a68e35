package redis

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"

	"notification-gateway/internal/domain"
)

// EventPublisher is the publish side of the notification event surface. The
// REST backend uses it to hand finished payloads to the gateway; it never
// calls the gateway's send primitives directly.
type EventPublisher struct {
	client  *redis.Client
	channel string
}

func NewEventPublisher(client *redis.Client, channel string) *EventPublisher {
	return &EventPublisher{client: client, channel: channel}
}

func (p *EventPublisher) Publish(ctx context.Context, event *domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.client.Publish(ctx, p.channel, payload).Err()
}
