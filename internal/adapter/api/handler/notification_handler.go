package handler

import (
	"carrylink/internal/usecase"
	"carrylink/pkg/response"
	"carrylink/pkg/utils"

	"github.com/labstack/echo/v4"
)

type NotificationHandler struct {
	notificationUseCase *usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
	}
}

func (h *NotificationHandler) ListMyNotifications(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	notifications, err := h.notificationUseCase.ListNotifications(c.Request().Context(), uid, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, notifications)
}

func (h *NotificationHandler) MarkNotificationRead(c echo.Context) error {
	id := c.Param("id")
	uid := c.Get("uid").(string)

	if err := h.notificationUseCase.MarkNotificationRead(c.Request().Context(), uid, id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"id": id})
}

func (h *NotificationHandler) MarkAllNotificationsRead(c echo.Context) error {
	uid := c.Get("uid").(string)

	count, err := h.notificationUseCase.MarkAllNotificationsRead(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int{"marked_read": count})
}
