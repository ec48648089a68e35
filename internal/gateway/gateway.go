package gateway

import (
	"sync"

	"notification-gateway/internal/auth"
	"notification-gateway/internal/domain"
	"notification-gateway/pkg/logger"
)

// CredentialVerifier validates a bearer token and yields its claim set.
type CredentialVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type readPayload struct {
	ID string `json:"id"`
}

// Gateway is the single authority over the connection registry: it admits or
// rejects new connections, routes domain events to the right rooms and
// answers liveness queries. Business logic never touches the registry or the
// send primitives directly; it publishes domain events instead.
type Gateway struct {
	registry *Registry
	verifier CredentialVerifier
	log      logger.Logger

	mutex    sync.RWMutex
	sessions map[string]string // connID -> userID
}

func New(verifier CredentialVerifier, log logger.Logger) *Gateway {
	return &Gateway{
		registry: NewRegistry(),
		verifier: verifier,
		log:      log,
		sessions: make(map[string]string),
	}
}

// OnConnect authenticates a freshly accepted connection and registers it.
// A missing or invalid credential means the connection is closed on the spot
// and never reaches the registry. Anonymous traffic is expected, so both
// cases log a warning, not an error.
func (g *Gateway) OnConnect(conn domain.Connection, token string) error {
	if token == "" {
		g.log.Warn("Connection rejected, no credential supplied", "connection_id", conn.ID())
		conn.Close()
		return domain.ErrMissingCredential
	}

	claims, err := g.verifier.Verify(token)
	if err != nil {
		g.log.Warn("Connection rejected, credential verification failed",
			"connection_id", conn.ID(), "error", err)
		conn.Close()
		return err
	}

	g.mutex.Lock()
	g.sessions[conn.ID()] = claims.Subject
	g.mutex.Unlock()

	g.registry.Add(claims.Subject, conn)
	g.registry.JoinRoom(UserRoom(claims.Subject), conn)

	g.log.Info("Connection registered", "connection_id", conn.ID(), "user_id", claims.Subject)
	return nil
}

// OnDisconnect unregisters a connection. Connections that never authenticated
// have no session entry and only get a log line. Calling it twice for the
// same connection is harmless.
func (g *Gateway) OnDisconnect(conn domain.Connection) {
	g.mutex.Lock()
	userID, exists := g.sessions[conn.ID()]
	delete(g.sessions, conn.ID())
	g.mutex.Unlock()

	if !exists {
		g.log.Info("Unauthenticated connection closed", "connection_id", conn.ID())
		return
	}

	g.registry.Remove(userID, conn.ID())
	g.log.Info("Connection unregistered", "connection_id", conn.ID(), "user_id", userID)
}

// Subscribe re-joins the caller's personal room and acknowledges. Purely
// idempotent; clients may call it any number of times, typically after a
// reconnect.
func (g *Gateway) Subscribe(conn domain.Connection) {
	g.mutex.RLock()
	userID, exists := g.sessions[conn.ID()]
	g.mutex.RUnlock()

	if !exists {
		if err := conn.Send(domain.ActionSubscribe, domain.ErrorAck{Status: "error", Message: "Not authenticated"}); err != nil {
			g.log.Error("Failed to send subscribe error", "connection_id", conn.ID(), "error", err)
		}
		return
	}

	g.registry.JoinRoom(UserRoom(userID), conn)
	if err := conn.Send(domain.ActionSubscribe, domain.SubscribeAck{Status: "subscribed", UserID: userID}); err != nil {
		g.log.Error("Failed to send subscribe ack", "connection_id", conn.ID(), "error", err)
	}
}

// AcknowledgeRead confirms receipt of a markAsRead message. The gateway does
// not mark anything as read; the notification service owns that mutation and
// publishes a notification.read event on its own.
func (g *Gateway) AcknowledgeRead(conn domain.Connection, notificationID string) {
	if err := conn.Send(domain.ActionMarkAsRead, domain.ReadReceipt{Status: "received", NotificationID: notificationID}); err != nil {
		g.log.Error("Failed to send read receipt", "connection_id", conn.ID(), "error", err)
	}
}

// HandleEvent routes a domain event to the rooms it targets. Delivery to a
// user with no live connection is a silent no-op; each send is fire-and-forget
// and failures are only logged.
func (g *Gateway) HandleEvent(event *domain.Event) error {
	switch event.Kind {
	case domain.NotificationCreated:
		g.SendToUser(event.UserID, domain.PushNotification, event.Notification)
	case domain.NotificationRead:
		g.SendToUser(event.UserID, domain.PushNotificationRead, readPayload{ID: event.NotificationID})
	case domain.NotificationBulk:
		for _, userID := range event.UserIDs {
			g.SendToUser(userID, domain.PushNotification, event.Notification)
		}
	default:
		g.log.Warn("Ignoring event of unknown kind", "kind", event.Kind)
	}
	return nil
}

// SendToUser delivers one event to every live connection of a user.
func (g *Gateway) SendToUser(userID, event string, data interface{}) {
	for _, conn := range g.registry.RoomConnections(UserRoom(userID)) {
		if err := conn.Send(event, data); err != nil {
			g.log.Error("Failed to send message", "connection_id", conn.ID(),
				"user_id", userID, "event", event, "error", err)
		}
	}
}

// Broadcast delivers one event to every connected client, for system-wide
// notices.
func (g *Gateway) Broadcast(event string, data interface{}) {
	for _, conn := range g.registry.AllConnections() {
		if err := conn.Send(event, data); err != nil {
			g.log.Error("Failed to broadcast message", "connection_id", conn.ID(),
				"event", event, "error", err)
		}
	}
}

func (g *Gateway) IsUserOnline(userID string) bool {
	return g.registry.IsUserOnline(userID)
}

func (g *Gateway) OnlineUsersCount() int {
	return g.registry.OnlineUsersCount()
}

func (g *Gateway) ConnectionCount() int {
	return g.registry.ConnectionCount()
}
