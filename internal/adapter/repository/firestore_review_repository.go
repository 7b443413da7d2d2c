package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"carrylink/internal/domain/entity"
	"carrylink/internal/domain/repository"
	"carrylink/pkg/errors"
)

type firestoreReviewRepository struct {
	client *firestore.Client
}

func NewFirestoreReviewRepository(client *firestore.Client) repository.ReviewRepository {
	return &firestoreReviewRepository{
		client: client,
	}
}

func (r *firestoreReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	if review.ID == "" {
		doc := r.client.Collection("reviews").NewDoc()
		review.ID = doc.ID
	}

	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	_, err := r.client.Collection("reviews").Doc(review.ID).Set(ctx, review)
	if err != nil {
		return errors.Internal("Failed to create review", err)
	}

	return nil
}

func (r *firestoreReviewRepository) GetByMatchAndReviewer(ctx context.Context, matchID, reviewerID string) (*entity.Review, error) {
	query := r.client.Collection("reviews").
		Where("matchId", "==", matchID).
		Where("reviewerId", "==", reviewerID).
		Limit(1)

	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Review", nil)
		}
		return nil, errors.Internal("Failed to query review", err)
	}

	var review entity.Review
	if err := doc.DataTo(&review); err != nil {
		return nil, errors.Internal("Failed to parse review data", err)
	}
	review.ID = doc.Ref.ID

	return &review, nil
}

func (r *firestoreReviewRepository) ListByReviewee(ctx context.Context, userID string, limit int) ([]*entity.Review, error) {
	query := r.client.Collection("reviews").Query.
		Where("revieweeId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	var reviews []*entity.Review

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate reviews", err)
		}

		var review entity.Review
		if err := doc.DataTo(&review); err != nil {
			return nil, errors.Internal("Failed to parse review data", err)
		}
		review.ID = doc.Ref.ID

		reviews = append(reviews, &review)
	}

	return reviews, nil
}
