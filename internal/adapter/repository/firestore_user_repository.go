package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"carrylink/internal/domain/entity"
	"carrylink/internal/domain/repository"
	"carrylink/pkg/errors"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, user)
	if err != nil {
		return errors.Internal("Failed to create user", err)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection("users").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	user.ID = doc.Ref.ID

	return &user, nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	updateData := map[string]interface{}{
		"fullName":   user.FullName,
		"phone":      user.Phone,
		"userType":   user.UserType,
		"country":    user.Country,
		"city":       user.City,
		"photoURL":   user.PhotoURL,
		"lastActive": time.Now(),
	}

	// Skip empty fields so partial profile updates don't wipe existing data.
	cleanUpdateData := make(map[string]interface{})
	for key, value := range updateData {
		if strVal, ok := value.(string); ok && strVal == "" {
			continue
		}
		cleanUpdateData[key] = value
	}

	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, cleanUpdateData, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to update user", err)
	}

	return nil
}

func (r *firestoreUserRepository) UpdateStats(ctx context.Context, userID string, rating float64, totalReviews int) error {
	_, err := r.client.Collection("users").Doc(userID).Update(ctx, []firestore.Update{
		{Path: "rating", Value: rating},
		{Path: "totalReviews", Value: totalReviews},
		{Path: "lastActive", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("User", err)
		}
		return errors.Internal("Failed to update user stats", err)
	}

	return nil
}
