package router

import (
	"github.com/labstack/echo/v4"

	"staygo/internal/adapter/api/handler"
	"staygo/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	authHandler := handler.GetAuthHandler()

	auth := e.Group("/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	authenticated := e.Group("/v1/auth")
	authenticated.Use(authMiddleware.Authenticate)
	authenticated.POST("/change-password", authHandler.ChangePassword)
	authenticated.POST("/delete-account", authHandler.DeleteAccount)
}
