package repository

import (
	"context"

	"carrylink/internal/domain/entity"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	// ListByMatch returns the match's messages ascending by createdAt, the
	// canonical conversation order.
	ListByMatch(ctx context.Context, matchID string) ([]*entity.Message, error)
	// MarkRead flips read on every unread message addressed to userID within
	// the match, one write per message, and reports how many were flipped.
	// Re-marking already-read messages is a no-op.
	MarkRead(ctx context.Context, matchID, userID string) (int, error)
	// Subscribe streams the full ordered message list on every change until
	// ctx is cancelled; consumers must tolerate full-list replacement.
	Subscribe(ctx context.Context, matchID string, fn func([]*entity.Message)) error
}
