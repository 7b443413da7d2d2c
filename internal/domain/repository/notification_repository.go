package repository

import (
	"context"

	"carrylink/internal/domain/entity"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id string) error
	// MarkAllRead flips every unread notification for the user and reports
	// how many were flipped.
	MarkAllRead(ctx context.Context, userID string) (int, error)
}
