package router

import (
	"github.com/labstack/echo/v4"

	"staygo/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	SetupAuthRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware, adminMiddleware)
	SetupListingRouter(e, authMiddleware, adminMiddleware)
	SetupReservationRouter(e, authMiddleware, adminMiddleware)
	SetupPaymentRouter(e, authMiddleware)
	SetupReviewRouter(e, authMiddleware, adminMiddleware)
	SetupMessageRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
