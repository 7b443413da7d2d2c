package router

import (
	"carrylink/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

func SetupAuthRouter(e *echo.Echo) {
	userHandler := handler.GetUserHandler()

	auth := e.Group("/v1/auth")
	auth.POST("/register", userHandler.Register)
}
