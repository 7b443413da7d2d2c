package router

import (
	"carrylink/internal/adapter/api/handler"
	"carrylink/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler, authMiddleware *middleware.AuthMiddleware) {
	// Token can come via header or ?token= for browser clients.
	ws := e.Group("/v1/ws")
	ws.Use(authMiddleware.OptionalAuthenticate)
	ws.GET("", wsHandler.HandleWebSocket)
}
