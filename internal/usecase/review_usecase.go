package usecase

import (
	"context"

	"carrylink/internal/domain/entity"
	"carrylink/internal/domain/repository"
	"carrylink/pkg/errors"
	"carrylink/pkg/logger"
)

type ReviewUseCase struct {
	reviewRepo       repository.ReviewRepository
	matchRepo        repository.MatchRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	matchRepo repository.MatchRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:       reviewRepo,
		matchRepo:        matchRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

type CreateReviewInput struct {
	MatchID        string `json:"match_id" validate:"required"`
	Rating         int    `json:"rating" validate:"required,min=1,max=5"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	WouldRecommend bool   `json:"would_recommend"`
}

// CreateReview lets a participant rate the other side of a completed match.
// One review per reviewer per match.
func (uc *ReviewUseCase) CreateReview(ctx context.Context, reviewerID string, input CreateReviewInput) (*entity.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}

	match, err := uc.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return nil, err
	}

	if !match.HasParticipant(reviewerID) {
		return nil, errors.Forbidden("You are not a participant of this match", nil)
	}

	if match.Status != entity.MatchStatusCompleted {
		return nil, errors.BadRequest("Reviews can only be written for completed matches", nil)
	}

	if _, err := uc.reviewRepo.GetByMatchAndReviewer(ctx, input.MatchID, reviewerID); err == nil {
		return nil, errors.BadRequest("You have already reviewed this match", nil)
	} else if !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}

	revieweeID := match.OtherParticipant(reviewerID)

	// The review hangs off the reviewee's side of the pair.
	listingID := match.SenderListingID
	if revieweeID == match.TravelerUserID {
		listingID = match.TravelerListingID
	}

	review := &entity.Review{
		MatchID:        input.MatchID,
		ReviewerID:     reviewerID,
		RevieweeID:     revieweeID,
		ListingID:      listingID,
		Rating:         input.Rating,
		Title:          input.Title,
		Content:        input.Content,
		WouldRecommend: input.WouldRecommend,
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := uc.recomputeStats(ctx, revieweeID); err != nil {
		logger.Warn("Failed to recompute rating for user %s: %v", revieweeID, err)
	}

	notification := &entity.Notification{
		UserID:  revieweeID,
		Type:    entity.NotificationTypeReview,
		Title:   "New review",
		Message: "You received a new review",
		Link:    "/users/" + revieweeID + "/reviews",
	}
	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		logger.Warn("Failed to create review notification for user %s: %v", revieweeID, err)
	}

	return review, nil
}

// recomputeStats rebuilds the reviewee's average from the full review list.
func (uc *ReviewUseCase) recomputeStats(ctx context.Context, userID string) error {
	reviews, err := uc.reviewRepo.ListByReviewee(ctx, userID, 0)
	if err != nil {
		return err
	}

	if len(reviews) == 0 {
		return nil
	}

	total := 0
	for _, review := range reviews {
		total += review.Rating
	}
	average := float64(total) / float64(len(reviews))

	return uc.userRepo.UpdateStats(ctx, userID, average, len(reviews))
}

func (uc *ReviewUseCase) GetUserReviews(ctx context.Context, userID string, limit int) ([]*entity.Review, error) {
	return uc.reviewRepo.ListByReviewee(ctx, userID, limit)
}
