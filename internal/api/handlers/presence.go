package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"notification-gateway/internal/domain"
	"notification-gateway/pkg/logger"
)

// PresenceHandler exposes the gateway's liveness predicate over HTTP for
// components that cannot hold a socket themselves.
type PresenceHandler struct {
	presence domain.Presence
	log      logger.Logger
}

func NewPresenceHandler(presence domain.Presence, log logger.Logger) *PresenceHandler {
	return &PresenceHandler{presence: presence, log: log}
}

func (h *PresenceHandler) GetUserPresence(c echo.Context) error {
	userID := c.Param("userID")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "userID required"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"userId": userID,
		"online": h.presence.IsUserOnline(userID),
	})
}

func (h *PresenceHandler) GetOnlineCount(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"onlineUsers": h.presence.OnlineUsersCount(),
	})
}
