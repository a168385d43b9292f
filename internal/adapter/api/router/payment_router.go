package router

import (
	"github.com/labstack/echo/v4"

	"staygo/internal/adapter/api/handler"
	"staygo/internal/adapter/api/middleware"
)

func SetupPaymentRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	paymentHandler := handler.GetPaymentHandler()

	payments := e.Group("/v1/payment")
	payments.Use(authMiddleware.Authenticate)
	payments.POST("/process", paymentHandler.ProcessPayment)
	payments.GET("/reservation/:id", paymentHandler.GetPaymentByReservation)
	payments.GET("/:id", paymentHandler.GetPayment)
}
