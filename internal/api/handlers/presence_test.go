package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notification-gateway/internal/api/handlers"
	"notification-gateway/pkg/logger"
)

type stubPresence struct {
	online map[string]bool
}

func (s *stubPresence) IsUserOnline(userID string) bool {
	return s.online[userID]
}

func (s *stubPresence) OnlineUsersCount() int {
	return len(s.online)
}

func TestGetUserPresence(t *testing.T) {
	h := handlers.NewPresenceHandler(&stubPresence{online: map[string]bool{"u1": true}}, logger.Nop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/presence/:userID")
	c.SetParamNames("userID")
	c.SetParamValues("u1")

	require.NoError(t, h.GetUserPresence(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"userId":"u1","online":true}`, rec.Body.String())
}

func TestGetUserPresence_Offline(t *testing.T) {
	h := handlers.NewPresenceHandler(&stubPresence{online: map[string]bool{}}, logger.Nop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/presence/:userID")
	c.SetParamNames("userID")
	c.SetParamValues("ghost")

	require.NoError(t, h.GetUserPresence(c))
	assert.JSONEq(t, `{"userId":"ghost","online":false}`, rec.Body.String())
}

func TestGetOnlineCount(t *testing.T) {
	h := handlers.NewPresenceHandler(&stubPresence{online: map[string]bool{"u1": true, "u2": true}}, logger.Nop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.GetOnlineCount(c))
	assert.JSONEq(t, `{"onlineUsers":2}`, rec.Body.String())
}
