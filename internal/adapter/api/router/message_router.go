package router

import (
	"github.com/labstack/echo/v4"

	"staygo/internal/adapter/api/handler"
	"staygo/internal/adapter/api/middleware"
)

func SetupMessageRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	messageHandler := handler.GetMessageHandler()

	messages := e.Group("/v1/messages")
	messages.Use(authMiddleware.Authenticate)
	messages.POST("", messageHandler.SendMessage)
	messages.GET("/conversations", messageHandler.ListConversations)
	messages.GET("/conversation/:id", messageHandler.GetHistory)
	messages.PUT("/:id", messageHandler.EditMessage)
	messages.DELETE("/:id", messageHandler.DeleteMessage)
}
