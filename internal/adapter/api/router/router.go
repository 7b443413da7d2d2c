package router

import (
	"carrylink/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	SetupAuthRouter(e)
	SetupUserRouter(e, authMiddleware)
	SetupListingRouter(e, authMiddleware)
	SetupMatchRouter(e, authMiddleware)
	SetupChatRouter(e, authMiddleware)
	SetupReviewRouter(e, authMiddleware)
	SetupNotificationRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
