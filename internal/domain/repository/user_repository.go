package repository

import (
	"context"

	"carrylink/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// Update merges non-empty profile fields; it never touches the aggregate
	// stats, which belong to UpdateStats.
	Update(ctx context.Context, user *entity.User) error
	// UpdateStats writes the recomputed review aggregates.
	UpdateStats(ctx context.Context, userID string, rating float64, totalReviews int) error
}
