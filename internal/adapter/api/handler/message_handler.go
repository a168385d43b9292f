package handler

import (
	"github.com/labstack/echo/v4"

	"staygo/internal/usecase"
	"staygo/pkg/response"
)

type MessageHandler struct {
	messagingUseCase *usecase.MessagingUseCase
}

func NewMessageHandler(messagingUseCase *usecase.MessagingUseCase) *MessageHandler {
	return &MessageHandler{
		messagingUseCase: messagingUseCase,
	}
}

type sendMessageRequest struct {
	ReceiverUsername string `json:"receiver_username" validate:"required"`
	Content          string `json:"content" validate:"required"`
}

func (h *MessageHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	message, err := h.messagingUseCase.SendMessage(c.Request().Context(), uid, usecase.SendMessageInput{
		ReceiverUsername: req.ReceiverUsername,
		Content:          req.Content,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *MessageHandler) ListConversations(c echo.Context) error {
	uid := c.Get("uid").(string)

	conversations, err := h.messagingUseCase.ListConversations(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversations)
}

func (h *MessageHandler) GetHistory(c echo.Context) error {
	uid := c.Get("uid").(string)

	messages, err := h.messagingUseCase.History(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

type editMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

func (h *MessageHandler) EditMessage(c echo.Context) error {
	var req editMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	message, err := h.messagingUseCase.EditMessage(c.Request().Context(), uid, c.Param("id"), usecase.EditMessageInput{
		Content: req.Content,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, message)
}

func (h *MessageHandler) DeleteMessage(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.messagingUseCase.DeleteMessage(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Message deleted"})
}
