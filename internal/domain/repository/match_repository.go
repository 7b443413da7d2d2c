package repository

import (
	"context"

	"carrylink/internal/domain/entity"
)

type MatchRepository interface {
	Create(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	// GetByListingPair returns the match for an exact (sender listing,
	// traveler listing) pair, or NOT_FOUND. Backs the uniqueness check.
	GetByListingPair(ctx context.Context, senderListingID, travelerListingID string) (*entity.Match, error)
	// ListByUser returns every match the user participates in, sorted
	// descending by lastMessageAt falling back to createdAt.
	ListByUser(ctx context.Context, userID string) ([]*entity.Match, error)
	// Update merges the given fields and stamps updatedAt.
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	// RecordMessage applies a message's side effects to the match in one
	// write: server-side increment of the receiver's unread counter plus the
	// denormalized last-message summary.
	RecordMessage(ctx context.Context, matchID, receiverID string, last *entity.LastMessage) error
	// ResetUnread zeroes the user's unread counter, whatever its prior value.
	ResetUnread(ctx context.Context, matchID, userID string) error
	// SubscribeByUser streams the user's full re-sorted match list on every
	// change until ctx is cancelled.
	SubscribeByUser(ctx context.Context, userID string, fn func([]*entity.Match)) error
}
