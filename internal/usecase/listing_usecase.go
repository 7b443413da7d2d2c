package usecase

import (
	"context"
	"strings"
	"time"

	"carrylink/internal/domain/entity"
	"carrylink/internal/domain/repository"
	"carrylink/pkg/errors"
	"carrylink/pkg/logger"
)

type ListingUseCase struct {
	listingRepo repository.ListingRepository

	activeLimit    int
	candidateLimit int
}

func NewListingUseCase(listingRepo repository.ListingRepository, activeLimit, candidateLimit int) *ListingUseCase {
	return &ListingUseCase{
		listingRepo:    listingRepo,
		activeLimit:    activeLimit,
		candidateLimit: candidateLimit,
	}
}

type CreateListingInput struct {
	Type          string                  `json:"type" validate:"required,oneof=sender traveler"`
	Origin        string                  `json:"origin" validate:"required"`
	Destination   string                  `json:"destination" validate:"required"`
	DepartureDate time.Time               `json:"departure_date,omitempty"`
	NeededByDate  time.Time               `json:"needed_by_date,omitempty"`
	FlexibleDates bool                    `json:"flexible_dates"`
	Price         float64                 `json:"price" validate:"gte=0"`
	PriceCurrency string                  `json:"price_currency"`
	Negotiable    bool                    `json:"negotiable"`
	Sender        *entity.SenderDetails   `json:"sender,omitempty"`
	Traveler      *entity.TravelerDetails `json:"traveler,omitempty"`
}

type UpdateListingInput struct {
	Origin        string                  `json:"origin,omitempty"`
	Destination   string                  `json:"destination,omitempty"`
	DepartureDate time.Time               `json:"departure_date,omitempty"`
	NeededByDate  time.Time               `json:"needed_by_date,omitempty"`
	FlexibleDates *bool                   `json:"flexible_dates,omitempty"`
	Price         *float64                `json:"price,omitempty"`
	PriceCurrency string                  `json:"price_currency,omitempty"`
	Negotiable    *bool                   `json:"negotiable,omitempty"`
	Status        string                  `json:"status,omitempty"`
	Sender        *entity.SenderDetails   `json:"sender,omitempty"`
	Traveler      *entity.TravelerDetails `json:"traveler,omitempty"`
}

func (uc *ListingUseCase) CreateListing(ctx context.Context, userID string, input CreateListingInput) (*entity.Listing, error) {
	if input.Type != entity.ListingTypeSender && input.Type != entity.ListingTypeTraveler {
		return nil, errors.BadRequest("Listing type must be sender or traveler", nil)
	}

	origin := strings.TrimSpace(input.Origin)
	destination := strings.TrimSpace(input.Destination)
	if origin == "" || destination == "" {
		return nil, errors.BadRequest("Origin and destination are required", nil)
	}

	// Exactly one payload, matching the listing type.
	switch input.Type {
	case entity.ListingTypeSender:
		if input.Sender == nil || input.Traveler != nil {
			return nil, errors.BadRequest("Sender listings require sender details only", nil)
		}
		if input.Sender.ItemDescription == "" {
			return nil, errors.BadRequest("Item description is required", nil)
		}
		if input.Sender.ItemWeight <= 0 {
			return nil, errors.BadRequest("Item weight must be positive", nil)
		}
	case entity.ListingTypeTraveler:
		if input.Traveler == nil || input.Sender != nil {
			return nil, errors.BadRequest("Traveler listings require traveler details only", nil)
		}
		if input.Traveler.AvailableSpace <= 0 {
			return nil, errors.BadRequest("Available space must be positive", nil)
		}
	}

	if input.Price < 0 {
		return nil, errors.BadRequest("Price cannot be negative", nil)
	}

	currency := input.PriceCurrency
	if currency == "" {
		currency = "USD"
	}

	listing := &entity.Listing{
		UserID:        userID,
		Type:          input.Type,
		Origin:        origin,
		Destination:   destination,
		DepartureDate: input.DepartureDate,
		NeededByDate:  input.NeededByDate,
		FlexibleDates: input.FlexibleDates,
		Price:         input.Price,
		PriceCurrency: currency,
		Negotiable:    input.Negotiable,
		Sender:        input.Sender,
		Traveler:      input.Traveler,
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

// GetListing fetches a listing and counts the view when someone other than the
// owner looks at it. The view write is best-effort.
func (uc *ListingUseCase) GetListing(ctx context.Context, id, viewerID string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if viewerID != "" && viewerID != listing.UserID {
		if err := uc.listingRepo.IncrementViews(ctx, id); err != nil {
			logger.Warn("Failed to increment views for listing %s: %v", id, err)
		} else {
			listing.Views++
		}
	}

	return listing, nil
}

func (uc *ListingUseCase) ListMyListings(ctx context.Context, userID string) ([]*entity.Listing, error) {
	return uc.listingRepo.ListByOwner(ctx, userID)
}

func (uc *ListingUseCase) ListActiveListings(ctx context.Context, listingType string) ([]*entity.Listing, error) {
	if listingType != "" && listingType != entity.ListingTypeSender && listingType != entity.ListingTypeTraveler {
		return nil, errors.BadRequest("Listing type must be sender or traveler", nil)
	}

	return uc.listingRepo.ListActive(ctx, listingType, uc.activeLimit)
}

func (uc *ListingUseCase) UpdateListing(ctx context.Context, id, userID string, input UpdateListingInput) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if listing.UserID != userID {
		return nil, errors.Forbidden("You don't have permission to update this listing", nil)
	}

	fields := map[string]interface{}{}

	if input.Origin != "" {
		fields["origin"] = strings.TrimSpace(input.Origin)
	}
	if input.Destination != "" {
		fields["destination"] = strings.TrimSpace(input.Destination)
	}
	if !input.DepartureDate.IsZero() {
		fields["departureDate"] = input.DepartureDate
	}
	if !input.NeededByDate.IsZero() {
		fields["neededByDate"] = input.NeededByDate
	}
	if input.FlexibleDates != nil {
		fields["flexibleDates"] = *input.FlexibleDates
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, errors.BadRequest("Price cannot be negative", nil)
		}
		fields["price"] = *input.Price
	}
	if input.PriceCurrency != "" {
		fields["priceCurrency"] = input.PriceCurrency
	}
	if input.Negotiable != nil {
		fields["negotiable"] = *input.Negotiable
	}
	if input.Status != "" {
		switch input.Status {
		case entity.ListingStatusActive, entity.ListingStatusMatched,
			entity.ListingStatusCompleted, entity.ListingStatusCancelled:
			fields["status"] = input.Status
		default:
			return nil, errors.BadRequest("Invalid listing status", nil)
		}
	}
	if input.Sender != nil {
		if listing.Type != entity.ListingTypeSender {
			return nil, errors.BadRequest("Sender details only apply to sender listings", nil)
		}
		fields["sender"] = input.Sender
	}
	if input.Traveler != nil {
		if listing.Type != entity.ListingTypeTraveler {
			return nil, errors.BadRequest("Traveler details only apply to traveler listings", nil)
		}
		fields["traveler"] = input.Traveler
	}

	if len(fields) == 0 {
		return listing, nil
	}

	if err := uc.listingRepo.Update(ctx, id, fields); err != nil {
		return nil, err
	}

	return uc.listingRepo.GetByID(ctx, id)
}

func (uc *ListingUseCase) DeleteListing(ctx context.Context, id, userID string) error {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if listing.UserID != userID {
		return errors.Forbidden("You don't have permission to delete this listing", nil)
	}

	return uc.listingRepo.SoftDelete(ctx, id)
}

// FindCandidateMatches returns active listings of the opposite kind on exactly
// the same route, newest first. Routes are compared by string equality; there
// is no fuzzy or nearby matching.
func (uc *ListingUseCase) FindCandidateMatches(ctx context.Context, listingID, userID string) ([]*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if listing.UserID != userID {
		return nil, errors.Forbidden("You don't have permission to view candidates for this listing", nil)
	}

	candidates, err := uc.listingRepo.ListActiveByRoute(
		ctx,
		listing.OppositeType(),
		listing.Origin,
		listing.Destination,
		uc.candidateLimit,
	)
	if err != nil {
		return nil, err
	}

	// The owner's own postings never show up as candidates.
	filtered := make([]*entity.Listing, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.UserID == userID {
			continue
		}
		filtered = append(filtered, candidate)
	}

	return filtered, nil
}
