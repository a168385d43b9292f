package router

import (
	"github.com/labstack/echo/v4"

	"staygo/internal/adapter/api/handler"
	"staygo/internal/adapter/api/middleware"
)

func SetupReviewRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	reviewHandler := handler.GetReviewHandler()

	// Public: property reviews and stats need no account.
	public := e.Group("/v1/reviews")
	public.GET("/property/:id", reviewHandler.ListByProperty)
	public.GET("/property/:id/stats", reviewHandler.GetStats)

	authenticated := e.Group("/v1/reviews")
	authenticated.Use(authMiddleware.Authenticate)
	authenticated.POST("", reviewHandler.CreateReview)
	authenticated.GET("/can-review", reviewHandler.CanReview)
	authenticated.GET("/reservation/:id", reviewHandler.GetReviewByReservation)
	authenticated.GET("/user/:id", reviewHandler.ListByUser)
	authenticated.GET("/:id", reviewHandler.GetReview)
	authenticated.PATCH("/:id", reviewHandler.UpdateReview)
	authenticated.DELETE("/:id", reviewHandler.DeleteReview)

	admin := e.Group("/v1/admin/reviews")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)
	admin.GET("", reviewHandler.ListAllReviews)
}
