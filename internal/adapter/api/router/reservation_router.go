package router

import (
	"github.com/labstack/echo/v4"

	"staygo/internal/adapter/api/handler"
	"staygo/internal/adapter/api/middleware"
)

func SetupReservationRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	reservationHandler := handler.GetReservationHandler()

	reservations := e.Group("/v1/reservations")
	reservations.Use(authMiddleware.Authenticate)
	reservations.POST("", reservationHandler.CreateReservation)
	reservations.GET("/mine", reservationHandler.ListMyReservations)
	reservations.GET("/user/:id", reservationHandler.ListByUser)
	reservations.GET("/host/:id", reservationHandler.ListByHost)
	reservations.GET("/:id", reservationHandler.GetReservation)
	reservations.POST("/:id/accept", reservationHandler.AcceptReservation)
	reservations.POST("/:id/decline", reservationHandler.DeclineReservation)
	reservations.POST("/:id/cancel", reservationHandler.CancelReservation)
	reservations.PATCH("/:id", reservationHandler.UpdateReservation)

	admin := e.Group("/v1/admin/reservations")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)
	admin.GET("", reservationHandler.ListAllReservations)
	admin.DELETE("/:id", reservationHandler.DeleteReservation)
}
