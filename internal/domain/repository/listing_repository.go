package repository

import (
	"context"

	"carrylink/internal/domain/entity"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	// ListByOwner returns all of a user's listings, newest first, regardless
	// of status; callers filter for display.
	ListByOwner(ctx context.Context, userID string) ([]*entity.Listing, error)
	// ListActive returns active listings, newest first. listingType filters by
	// kind when non-empty.
	ListActive(ctx context.Context, listingType string, limit int) ([]*entity.Listing, error)
	// ListActiveByRoute is the matching query: active listings of the given
	// kind whose origin and destination both match exactly.
	ListActiveByRoute(ctx context.Context, listingType, origin, destination string, limit int) ([]*entity.Listing, error)
	// Update merges the given fields and stamps updatedAt. Last write wins.
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	// SoftDelete cancels a listing; listings are never physically removed.
	SoftDelete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	// MarkMatched flips status to "matched" and bumps the match counter.
	MarkMatched(ctx context.Context, id string) error
}
