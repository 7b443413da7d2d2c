package handler

import (
	"carrylink/internal/usecase"
	"carrylink/pkg/response"

	"github.com/labstack/echo/v4"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type sendMessageRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url"`
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	matchID := c.Param("id")

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), uid, matchID, usecase.SendMessageInput{
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) GetMatchMessages(c echo.Context) error {
	matchID := c.Param("id")
	uid := c.Get("uid").(string)

	messages, err := h.chatUseCase.GetMatchMessages(c.Request().Context(), uid, matchID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

func (h *ChatHandler) MarkMessagesAsRead(c echo.Context) error {
	matchID := c.Param("id")
	uid := c.Get("uid").(string)

	count, err := h.chatUseCase.MarkMessagesAsRead(c.Request().Context(), uid, matchID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int{"marked_read": count})
}
