package repository

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"carrylink/internal/domain/entity"
	"carrylink/internal/domain/repository"
	"carrylink/pkg/errors"
)

type firestoreNotificationRepository struct {
	client *firestore.Client
}

func NewFirestoreNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &firestoreNotificationRepository{
		client: client,
	}
}

func (r *firestoreNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	if notification.ID == "" {
		doc := r.client.Collection("notifications").NewDoc()
		notification.ID = doc.ID
	}

	notification.Read = false
	notification.CreatedAt = time.Now()

	_, err := r.client.Collection("notifications").Doc(notification.ID).Set(ctx, notification)
	if err != nil {
		return errors.Internal("Failed to create notification", err)
	}

	return nil
}

func (r *firestoreNotificationRepository) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	doc, err := r.client.Collection("notifications").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Notification", err)
		}
		return nil, errors.Internal("Failed to get notification", err)
	}

	var notification entity.Notification
	if err := doc.DataTo(&notification); err != nil {
		return nil, errors.Internal("Failed to parse notification data", err)
	}
	notification.ID = doc.Ref.ID

	return &notification, nil
}

func (r *firestoreNotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Notification, error) {
	query := r.client.Collection("notifications").Query.
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	var notifications []*entity.Notification

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate notifications", err)
		}

		var notification entity.Notification
		if err := doc.DataTo(&notification); err != nil {
			return nil, errors.Internal("Failed to parse notification data", err)
		}
		notification.ID = doc.Ref.ID

		notifications = append(notifications, &notification)
	}

	return notifications, nil
}

func (r *firestoreNotificationRepository) MarkRead(ctx context.Context, id string) error {
	_, err := r.client.Collection("notifications").Doc(id).Update(ctx, []firestore.Update{
		{Path: "read", Value: true},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Notification", err)
		}
		return errors.Internal("Failed to mark notification as read", err)
	}

	return nil
}

func (r *firestoreNotificationRepository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	query := r.client.Collection("notifications").
		Where("userId", "==", userID).
		Where("read", "==", false)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to query unread notifications", err)
	}

	updated := 0
	for _, doc := range docs {
		_, err := doc.Ref.Update(ctx, []firestore.Update{
			{Path: "read", Value: true},
		})
		if err != nil {
			log.Printf("Failed to mark notification %s as read: %v", doc.Ref.ID, err)
			continue
		}
		updated++
	}

	return updated, nil
}
