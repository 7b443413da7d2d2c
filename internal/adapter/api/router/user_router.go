package router

import (
	"carrylink/internal/adapter/api/handler"
	"carrylink/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()

	me := e.Group("/v1/users/me")
	me.Use(authMiddleware.Authenticate)
	me.GET("", userHandler.GetMyProfile)
	me.PUT("", userHandler.UpdateMyProfile)

	users := e.Group("/v1/users")
	users.GET("/:id", userHandler.GetUser)
	users.GET("/:id/reviews", userHandler.GetUserReviews)
}
