package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"carrylink/internal/adapter/api/middleware"
	ws "carrylink/internal/infrastructure/websocket"
	"carrylink/pkg/errors"
)

type WebSocketHandler struct {
	wsManager      *ws.Manager
	authMiddleware *middleware.AuthMiddleware
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Restrict this in production
	},
}

func NewWebSocketHandler(wsManager *ws.Manager, authMiddleware *middleware.AuthMiddleware) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:      wsManager,
		authMiddleware: authMiddleware,
	}
}

// HandleWebSocket upgrades the connection. Browsers can't set headers on
// websocket upgrades, so the token may also arrive as a query parameter.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	userID, ok := c.Get("uid").(string)
	if !ok || userID == "" {
		token := c.QueryParam("token")
		if token == "" {
			return errors.Unauthorized("Authentication required", nil)
		}

		uid, err := h.authMiddleware.GetUIDFromToken(c.Request().Context(), token)
		if err != nil {
			return errors.Unauthorized("Invalid or expired token", err)
		}
		userID = uid
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := ws.NewClient(userID, conn)

	h.wsManager.Register <- client

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}
