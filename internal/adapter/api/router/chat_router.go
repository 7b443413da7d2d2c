package router

import (
	"carrylink/internal/adapter/api/handler"
	"carrylink/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	chatHandler := handler.GetChatHandler()

	chat := e.Group("/v1/matches")
	chat.Use(authMiddleware.Authenticate)
	chat.GET("/:id/messages", chatHandler.GetMatchMessages)
	chat.POST("/:id/messages", chatHandler.SendMessage)
	chat.POST("/:id/read", chatHandler.MarkMessagesAsRead)
}
