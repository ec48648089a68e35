package domain

import (
	"context"
	"errors"
)

var (
	ErrMissingCredential = errors.New("missing credential")
	ErrNotAuthenticated  = errors.New("not authenticated")
)

// Connection is a live, bidirectional session with a remote client. The
// transport assigns the id at accept time; the subject is tracked by the
// gateway, not the connection itself.
type Connection interface {
	ID() string
	Send(event string, data interface{}) error
	Close() error
}

// Presence is the only liveness surface other components may query. The
// registry behind it is owned exclusively by the gateway.
type Presence interface {
	IsUserOnline(userID string) bool
	OnlineUsersCount() int
}

type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
}

type EventSubscriber interface {
	Subscribe(ctx context.Context, handler EventHandler) error
}
