package domain

import (
	"encoding/json"
	"fmt"
)

type EventKind string

const (
	NotificationCreated EventKind = "notification.created"
	NotificationRead    EventKind = "notification.read"
	NotificationBulk    EventKind = "notification.bulk"
)

// Event is a domain event published by the REST-side business logic whenever
// something should be pushed to one or more users. The gateway consumes each
// event exactly once and discards it; there is no retry or replay.
type Event struct {
	Kind           EventKind       `json:"kind"`
	UserID         string          `json:"user_id,omitempty"`
	UserIDs        []string        `json:"user_ids,omitempty"`
	NotificationID string          `json:"notification_id,omitempty"`
	Notification   json.RawMessage `json:"notification,omitempty"`
}

type EventHandler func(event *Event) error

func ParseEvent(payload []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}

	switch event.Kind {
	case NotificationCreated, NotificationRead, NotificationBulk:
		return &event, nil
	default:
		return nil, fmt.Errorf("unknown event kind: %q", event.Kind)
	}
}
