package repository

import (
	"context"
	"log"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"carrylink/internal/domain/entity"
	"carrylink/internal/domain/repository"
	"carrylink/pkg/errors"
)

type firestoreMatchRepository struct {
	client *firestore.Client
}

func NewFirestoreMatchRepository(client *firestore.Client) repository.MatchRepository {
	return &firestoreMatchRepository{
		client: client,
	}
}

func (r *firestoreMatchRepository) Create(ctx context.Context, match *entity.Match) error {
	if match.ID == "" {
		doc := r.client.Collection("matches").NewDoc()
		match.ID = doc.ID
	}

	now := time.Now()
	match.CreatedAt = now
	match.UpdatedAt = now

	_, err := r.client.Collection("matches").Doc(match.ID).Set(ctx, match)
	if err != nil {
		return errors.Internal("Failed to create match", err)
	}

	return nil
}

func (r *firestoreMatchRepository) GetByID(ctx context.Context, id string) (*entity.Match, error) {
	doc, err := r.client.Collection("matches").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Match", err)
		}
		return nil, errors.Internal("Failed to get match", err)
	}

	var match entity.Match
	if err := doc.DataTo(&match); err != nil {
		return nil, errors.Internal("Failed to parse match data", err)
	}
	match.ID = doc.Ref.ID

	return &match, nil
}

func (r *firestoreMatchRepository) GetByListingPair(ctx context.Context, senderListingID, travelerListingID string) (*entity.Match, error) {
	query := r.client.Collection("matches").
		Where("senderListingId", "==", senderListingID).
		Where("travelerListingId", "==", travelerListingID).
		Limit(1)

	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Match", nil)
		}
		return nil, errors.Internal("Failed to query match by listing pair", err)
	}

	var match entity.Match
	if err := doc.DataTo(&match); err != nil {
		return nil, errors.Internal("Failed to parse match data", err)
	}
	match.ID = doc.Ref.ID

	return &match, nil
}

func (r *firestoreMatchRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Match, error) {
	// lastMessageAt is absent until the first message, so the coalesced sort
	// happens in memory rather than in the query.
	query := r.client.Collection("matches").Where("userIds", "array-contains", userID)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		log.Printf("Firestore error while fetching matches for user %s: %v", userID, err)
		return nil, errors.Internal("Failed to fetch matches", err)
	}

	matches := make([]*entity.Match, 0, len(docs))
	for _, doc := range docs {
		var match entity.Match
		if err := doc.DataTo(&match); err != nil {
			log.Printf("Error parsing match data for user %s: %v", userID, err)
			continue
		}
		match.ID = doc.Ref.ID
		matches = append(matches, &match)
	}

	sortMatches(matches)

	return matches, nil
}

func (r *firestoreMatchRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now()})

	_, err := r.client.Collection("matches").Doc(id).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Match", err)
		}
		return errors.Internal("Failed to update match", err)
	}

	return nil
}

func (r *firestoreMatchRepository) RecordMessage(ctx context.Context, matchID, receiverID string, last *entity.LastMessage) error {
	// Single write: the server-side increment keeps concurrent senders from
	// losing each other's unread counts.
	_, err := r.client.Collection("matches").Doc(matchID).Update(ctx, []firestore.Update{
		{Path: "unreadCount." + receiverID, Value: firestore.Increment(1)},
		{Path: "lastMessage", Value: last},
		{Path: "lastMessageAt", Value: last.CreatedAt},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Match", err)
		}
		return errors.Internal("Failed to record message on match", err)
	}

	return nil
}

func (r *firestoreMatchRepository) ResetUnread(ctx context.Context, matchID, userID string) error {
	_, err := r.client.Collection("matches").Doc(matchID).Update(ctx, []firestore.Update{
		{Path: "unreadCount." + userID, Value: 0},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Match", err)
		}
		return errors.Internal("Failed to reset unread count", err)
	}

	return nil
}

func (r *firestoreMatchRepository) SubscribeByUser(ctx context.Context, userID string, fn func([]*entity.Match)) error {
	query := r.client.Collection("matches").Where("userIds", "array-contains", userID)

	snapIter := query.Snapshots(ctx)
	defer snapIter.Stop()

	for {
		snap, err := snapIter.Next()
		if err != nil {
			if ctx.Err() != nil || status.Code(err) == codes.Canceled {
				return nil
			}
			return errors.Internal("Match subscription failed", err)
		}

		var matches []*entity.Match
		for {
			doc, err := snap.Documents.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				log.Printf("Match subscription: failed to iterate snapshot for user %s: %v", userID, err)
				break
			}

			var match entity.Match
			if err := doc.DataTo(&match); err != nil {
				continue
			}
			match.ID = doc.Ref.ID
			matches = append(matches, &match)
		}

		sortMatches(matches)
		fn(matches)
	}
}

func sortMatches(matches []*entity.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].SortKey().After(matches[j].SortKey())
	})
}
