package usecase

import (
	"context"
	"fmt"
	"time"

	"carrylink/internal/domain/entity"
	"carrylink/internal/domain/repository"
	"carrylink/pkg/errors"
	"carrylink/pkg/logger"
)

type MatchUseCase struct {
	matchRepo        repository.MatchRepository
	listingRepo      repository.ListingRepository
	notificationRepo repository.NotificationRepository
	notifier         RealtimeNotifier
	limiter          RateLimiter
}

func NewMatchUseCase(
	matchRepo repository.MatchRepository,
	listingRepo repository.ListingRepository,
	notificationRepo repository.NotificationRepository,
	notifier RealtimeNotifier,
	limiter RateLimiter,
) *MatchUseCase {
	return &MatchUseCase{
		matchRepo:        matchRepo,
		listingRepo:      listingRepo,
		notificationRepo: notificationRepo,
		notifier:         notifier,
		limiter:          limiter,
	}
}

type UpdateMatchInput struct {
	Status           string    `json:"status,omitempty"`
	MeetingLocation  string    `json:"meeting_location,omitempty"`
	MeetingDate      time.Time `json:"meeting_date,omitempty"`
	MeetingConfirmed *bool     `json:"meeting_confirmed,omitempty"`
	AgreedPrice      *float64  `json:"agreed_price,omitempty"`
	PaymentStatus    string    `json:"payment_status,omitempty"`
}

// CreateMatch pairs a sender listing with a traveler listing. At most one
// match exists per pair: when one already exists it is returned with
// existed=true and nothing is written.
func (uc *MatchUseCase) CreateMatch(ctx context.Context, userID, senderListingID, travelerListingID string) (*entity.Match, bool, error) {
	if allowed, wait := uc.limiter.Allow(userID, "create_match"); !allowed {
		return nil, false, errors.TooManyRequests(fmt.Sprintf("Too many match requests, retry in %s", wait.Round(time.Second)))
	}

	senderListing, err := uc.listingRepo.GetByID(ctx, senderListingID)
	if err != nil {
		return nil, false, err
	}
	if senderListing.Type != entity.ListingTypeSender {
		return nil, false, errors.BadRequest("senderListingId must reference a sender listing", nil)
	}

	travelerListing, err := uc.listingRepo.GetByID(ctx, travelerListingID)
	if err != nil {
		return nil, false, err
	}
	if travelerListing.Type != entity.ListingTypeTraveler {
		return nil, false, errors.BadRequest("travelerListingId must reference a traveler listing", nil)
	}

	if senderListing.UserID != userID && travelerListing.UserID != userID {
		return nil, false, errors.Forbidden("You must own one of the listings to create a match", nil)
	}

	if senderListing.UserID == travelerListing.UserID {
		return nil, false, errors.BadRequest("Cannot match your own listings with each other", nil)
	}

	if senderListing.Origin != travelerListing.Origin || senderListing.Destination != travelerListing.Destination {
		return nil, false, errors.BadRequest("Listings are not on the same route", nil)
	}

	existing, err := uc.matchRepo.GetByListingPair(ctx, senderListingID, travelerListingID)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, errors.CodeNotFound) {
		return nil, false, err
	}

	match := &entity.Match{
		SenderListingID:   senderListingID,
		TravelerListingID: travelerListingID,
		SenderUserID:      senderListing.UserID,
		TravelerUserID:    travelerListing.UserID,
		ListingIDs:        []string{senderListingID, travelerListingID},
		UserIDs:           []string{senderListing.UserID, travelerListing.UserID},
		Status:            entity.MatchStatusPending,
		UnreadCount: map[string]int{
			senderListing.UserID:   0,
			travelerListing.UserID: 0,
		},
		PaymentStatus: entity.PaymentStatusPending,
	}

	if err := uc.matchRepo.Create(ctx, match); err != nil {
		return nil, false, err
	}

	// Listing flips are best-effort: a failure leaves the listing active but
	// never rolls back the match.
	if err := uc.listingRepo.MarkMatched(ctx, senderListingID); err != nil {
		logger.Warn("Failed to mark sender listing %s as matched: %v", senderListingID, err)
	}
	if err := uc.listingRepo.MarkMatched(ctx, travelerListingID); err != nil {
		logger.Warn("Failed to mark traveler listing %s as matched: %v", travelerListingID, err)
	}

	counterpart := match.OtherParticipant(userID)
	uc.notifyCounterpart(ctx, counterpart, match)

	uc.notifier.NotifyMatch(match.SenderUserID, match)
	uc.notifier.NotifyMatch(match.TravelerUserID, match)

	return match, false, nil
}

func (uc *MatchUseCase) notifyCounterpart(ctx context.Context, userID string, match *entity.Match) {
	notification := &entity.Notification{
		UserID:  userID,
		Type:    entity.NotificationTypeMatch,
		Title:   "New match request",
		Message: "Someone wants to match with your listing",
		Link:    "/matches/" + match.ID,
	}
	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		logger.Warn("Failed to create match notification for user %s: %v", userID, err)
	}
}

// GetUserMatches returns the user's matches, most recent activity first.
func (uc *MatchUseCase) GetUserMatches(ctx context.Context, userID string) ([]*entity.Match, error) {
	return uc.matchRepo.ListByUser(ctx, userID)
}

func (uc *MatchUseCase) GetMatch(ctx context.Context, id, userID string) (*entity.Match, error) {
	match, err := uc.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !match.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this match", nil)
	}

	return match, nil
}

// UpdateMatch applies negotiation fields. Either participant may write any of
// them; last write wins and no transition ordering is enforced.
func (uc *MatchUseCase) UpdateMatch(ctx context.Context, id, userID string, input UpdateMatchInput) (*entity.Match, error) {
	match, err := uc.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !match.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this match", nil)
	}

	fields := map[string]interface{}{}

	if input.Status != "" {
		switch input.Status {
		case entity.MatchStatusPending, entity.MatchStatusAccepted, entity.MatchStatusRejected,
			entity.MatchStatusCompleted, entity.MatchStatusCancelled:
			fields["status"] = input.Status
		default:
			return nil, errors.BadRequest("Invalid match status", nil)
		}
	}
	if input.MeetingLocation != "" {
		fields["meetingLocation"] = input.MeetingLocation
	}
	if !input.MeetingDate.IsZero() {
		fields["meetingDate"] = input.MeetingDate
	}
	if input.MeetingConfirmed != nil {
		fields["meetingConfirmed"] = *input.MeetingConfirmed
	}
	if input.AgreedPrice != nil {
		if *input.AgreedPrice < 0 {
			return nil, errors.BadRequest("Agreed price cannot be negative", nil)
		}
		fields["agreedPrice"] = *input.AgreedPrice
	}
	if input.PaymentStatus != "" {
		switch input.PaymentStatus {
		case entity.PaymentStatusPending, entity.PaymentStatusPartial,
			entity.PaymentStatusCompleted, entity.PaymentStatusRefunded:
			fields["paymentStatus"] = input.PaymentStatus
		default:
			return nil, errors.BadRequest("Invalid payment status", nil)
		}
	}

	if len(fields) == 0 {
		return match, nil
	}

	if err := uc.matchRepo.Update(ctx, id, fields); err != nil {
		return nil, err
	}

	updated, err := uc.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.notifier.NotifyMatch(updated.OtherParticipant(userID), updated)

	return updated, nil
}

// SubscribeMatches streams the user's match list on every change until the
// context is cancelled.
func (uc *MatchUseCase) SubscribeMatches(ctx context.Context, userID string, fn func([]*entity.Match)) error {
	return uc.matchRepo.SubscribeByUser(ctx, userID, fn)
}
