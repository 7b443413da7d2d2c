package router

import (
	"carrylink/internal/adapter/api/handler"
	"carrylink/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupNotificationRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	notificationHandler := handler.GetNotificationHandler()

	notifications := e.Group("/v1/notifications")
	notifications.Use(authMiddleware.Authenticate)
	notifications.GET("", notificationHandler.ListMyNotifications)
	notifications.POST("/:id/read", notificationHandler.MarkNotificationRead)
	notifications.POST("/read-all", notificationHandler.MarkAllNotificationsRead)
}
