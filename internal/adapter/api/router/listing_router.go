package router

import (
	"github.com/labstack/echo/v4"

	"staygo/internal/adapter/api/handler"
	"staygo/internal/adapter/api/middleware"
)

func SetupListingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	listingHandler := handler.GetListingHandler()

	// Public browse and detail.
	listings := e.Group("/v1/listings")
	listings.GET("", listingHandler.ListListings)
	listings.GET("/:id", listingHandler.GetListing)

	authenticated := e.Group("/v1/listings")
	authenticated.Use(authMiddleware.Authenticate)
	authenticated.POST("", listingHandler.CreateListing)
	authenticated.GET("/mine", listingHandler.ListMyListings)
	authenticated.PATCH("/:id", listingHandler.UpdateListing)
	authenticated.DELETE("/:id", listingHandler.DeleteListing)

	admin := e.Group("/v1/admin/listings")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)
	admin.GET("/pending", listingHandler.ListPending)
	admin.POST("/:id/approve", listingHandler.ApproveListing)
	admin.POST("/:id/decline", listingHandler.DeclineListing)
}
