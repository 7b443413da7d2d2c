package usecase

import (
	"context"

	"carrylink/internal/domain/entity"
	"carrylink/internal/domain/repository"
	"carrylink/pkg/errors"
)

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationUseCase(notificationRepo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
	}
}

func (uc *NotificationUseCase) ListNotifications(ctx context.Context, userID string, limit int) ([]*entity.Notification, error) {
	return uc.notificationRepo.ListByUser(ctx, userID, limit)
}

func (uc *NotificationUseCase) MarkNotificationRead(ctx context.Context, userID, id string) error {
	notification, err := uc.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if notification.UserID != userID {
		return errors.Forbidden("You don't have permission to update this notification", nil)
	}

	return uc.notificationRepo.MarkRead(ctx, id)
}

func (uc *NotificationUseCase) MarkAllNotificationsRead(ctx context.Context, userID string) (int, error) {
	return uc.notificationRepo.MarkAllRead(ctx, userID)
}
