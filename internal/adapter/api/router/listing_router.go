package router

import (
	"carrylink/internal/adapter/api/handler"
	"carrylink/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupListingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	listingHandler := handler.GetListingHandler()

	listings := e.Group("/v1/listings")
	listings.GET("", listingHandler.ListListings)

	// Detail reads are public but count a view when a signed-in non-owner
	// looks.
	listingDetail := e.Group("/v1/listings")
	listingDetail.Use(authMiddleware.OptionalAuthenticate)
	listingDetail.GET("/:id", listingHandler.GetListing)

	myListings := e.Group("/v1/my-listings")
	myListings.Use(authMiddleware.Authenticate)
	myListings.GET("", listingHandler.ListMyListings)
	myListings.POST("", listingHandler.CreateListing)
	myListings.PUT("/:id", listingHandler.UpdateListing)
	myListings.DELETE("/:id", listingHandler.DeleteListing)
	myListings.GET("/:id/candidates", listingHandler.FindCandidateMatches)
}
