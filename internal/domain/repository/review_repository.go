package repository

import (
	"context"

	"carrylink/internal/domain/entity"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	// GetByMatchAndReviewer returns the reviewer's existing review for the
	// match, or NOT_FOUND. Backs the one-review-per-side check.
	GetByMatchAndReviewer(ctx context.Context, matchID, reviewerID string) (*entity.Review, error)
	ListByReviewee(ctx context.Context, userID string, limit int) ([]*entity.Review, error)
}
