package router

import (
	"carrylink/internal/adapter/api/handler"
	"carrylink/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupReviewRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	reviewHandler := handler.GetReviewHandler()

	reviews := e.Group("/v1/reviews")
	reviews.Use(authMiddleware.Authenticate)
	reviews.POST("", reviewHandler.CreateReview)
}
