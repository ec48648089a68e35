package gateway

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"notification-gateway/internal/domain"
	"notification-gateway/pkg/logger"
)

// Handler upgrades HTTP requests on the notification channel to websocket
// connections and hands them to the Gateway.
type Handler struct {
	gateway  *Gateway
	log      logger.Logger
	upgrader websocket.Upgrader
}

func NewHandler(gw *Gateway, frontendOrigin string, log logger.Logger) *Handler {
	return &Handler{
		gateway: gw,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// Non-browser clients send no Origin header.
				return origin == "" || origin == frontendOrigin
			},
		},
	}
}

// HandleConnection completes the transport handshake and runs authentication
// before anything else. Rejected connections are closed without a structured
// error on the wire; the client only observes the close.
func (h *Handler) HandleConnection(c echo.Context) error {
	token := extractToken(c.Request())

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Error("Failed to upgrade connection", "error", err)
		return nil
	}

	wsConn := newWSConnection(conn, h.log)
	if err := h.gateway.OnConnect(wsConn, token); err != nil {
		// Already closed and never registered.
		return nil
	}

	go wsConn.writePump()
	go h.readPump(wsConn)
	return nil
}

// extractToken checks the connect-time token field first, then falls back to
// a standard bearer header.
func extractToken(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}

	authHeader := r.Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// readPump consumes client messages until the connection dies, then runs the
// disconnect bookkeeping.
func (h *Handler) readPump(conn *wsConnection) {
	defer func() {
		h.gateway.OnDisconnect(conn)
		conn.Close()
	}()

	conn.conn.SetReadLimit(maxMessageSize)
	conn.conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.conn.SetPongHandler(func(string) error {
		conn.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Error("Failed to read message", "connection_id", conn.ID(), "error", err)
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			h.log.Warn("Discarding malformed client message", "connection_id", conn.ID(), "error", err)
			continue
		}

		switch msg.Action {
		case domain.ActionSubscribe:
			h.gateway.Subscribe(conn)
		case domain.ActionMarkAsRead:
			h.gateway.AcknowledgeRead(conn, msg.NotificationID)
		default:
			h.log.Debug("Ignoring unknown client action", "connection_id", conn.ID(), "action", msg.Action)
		}
	}
}
