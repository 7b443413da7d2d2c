package repository

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"carrylink/internal/domain/entity"
	"carrylink/internal/domain/repository"
	"carrylink/pkg/errors"
)

type firestoreMessageRepository struct {
	client *firestore.Client
}

func NewFirestoreMessageRepository(client *firestore.Client) repository.MessageRepository {
	return &firestoreMessageRepository{
		client: client,
	}
}

func (r *firestoreMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}

	message.Read = false
	message.CreatedAt = time.Now()

	_, err := r.client.Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreMessageRepository) ListByMatch(ctx context.Context, matchID string) ([]*entity.Message, error) {
	query := r.client.Collection("messages").
		Where("matchId", "==", matchID).
		OrderBy("createdAt", firestore.Asc)

	iter := query.Documents(ctx)
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("Firestore error while iterating messages for match %s: %v", matchID, err)
			return nil, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			log.Printf("Error parsing message data for match %s: %v", matchID, err)
			return nil, errors.Internal("Failed to parse message data", err)
		}
		message.ID = doc.Ref.ID

		messages = append(messages, &message)
	}

	return messages, nil
}

func (r *firestoreMessageRepository) MarkRead(ctx context.Context, matchID, userID string) (int, error) {
	query := r.client.Collection("messages").
		Where("matchId", "==", matchID).
		Where("receiverId", "==", userID).
		Where("read", "==", false)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to query unread messages", err)
	}

	// One write per message; message volume per match is expected to be low.
	updated := 0
	for _, doc := range docs {
		_, err := doc.Ref.Update(ctx, []firestore.Update{
			{Path: "read", Value: true},
		})
		if err != nil {
			log.Printf("Failed to mark message %s as read: %v", doc.Ref.ID, err)
			continue
		}
		updated++
	}

	return updated, nil
}

func (r *firestoreMessageRepository) Subscribe(ctx context.Context, matchID string, fn func([]*entity.Message)) error {
	query := r.client.Collection("messages").
		Where("matchId", "==", matchID).
		OrderBy("createdAt", firestore.Asc)

	snapIter := query.Snapshots(ctx)
	defer snapIter.Stop()

	for {
		snap, err := snapIter.Next()
		if err != nil {
			if ctx.Err() != nil || status.Code(err) == codes.Canceled {
				return nil
			}
			return errors.Internal("Message subscription failed", err)
		}

		var messages []*entity.Message
		for {
			doc, err := snap.Documents.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				log.Printf("Message subscription: failed to iterate snapshot for match %s: %v", matchID, err)
				break
			}

			var message entity.Message
			if err := doc.DataTo(&message); err != nil {
				continue
			}
			message.ID = doc.Ref.ID
			messages = append(messages, &message)
		}

		fn(messages)
	}
}
