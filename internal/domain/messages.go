package domain

// Push is the envelope for every server-to-client message.
type Push struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Outbound push event names.
const (
	PushNotification     = "notification"
	PushNotificationRead = "notification:read"
)

// ClientMessage is what a connected client sends over the socket.
type ClientMessage struct {
	Action         string `json:"action"`
	NotificationID string `json:"notificationId,omitempty"`
}

// Client message actions.
const (
	ActionSubscribe  = "subscribe"
	ActionMarkAsRead = "markAsRead"
)

// SubscribeAck is returned for a successful subscribe.
type SubscribeAck struct {
	Status string `json:"status"`
	UserID string `json:"userId"`
}

// ErrorAck is the soft failure returned to an unauthenticated caller.
type ErrorAck struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ReadReceipt acknowledges receipt of a markAsRead message. The gateway does
// not mutate any persisted state; the REST side owns that and publishes a
// notification.read event separately.
type ReadReceipt struct {
	Status         string `json:"status"`
	NotificationID string `json:"notificationId"`
}
