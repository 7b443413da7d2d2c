package router

import (
	"carrylink/internal/adapter/api/handler"
	"carrylink/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupMatchRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	matchHandler := handler.GetMatchHandler()

	matches := e.Group("/v1/matches")
	matches.Use(authMiddleware.Authenticate)
	matches.POST("", matchHandler.CreateMatch)
	matches.GET("", matchHandler.ListMyMatches)
	matches.GET("/:id", matchHandler.GetMatch)
	matches.PATCH("/:id", matchHandler.UpdateMatch)
}
