package usecase

import (
	"context"
	"time"

	"carrylink/internal/domain/entity"
	"carrylink/internal/domain/repository"
	"carrylink/pkg/errors"
)

// AuthClient is the slice of Firebase identity we use. Sign-in itself happens
// on the client against Firebase; the server creates accounts and verifies
// bearer tokens.
type AuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
}

type UserUseCase struct {
	userRepo   repository.UserRepository
	authClient AuthClient
}

func NewUserUseCase(userRepo repository.UserRepository, authClient AuthClient) *UserUseCase {
	return &UserUseCase{
		userRepo:   userRepo,
		authClient: authClient,
	}
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone,omitempty"`
	UserType string `json:"user_type" validate:"required,oneof=sender traveler both"`
	Country  string `json:"country,omitempty"`
	City     string `json:"city,omitempty"`
}

type UpdateProfileInput struct {
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	UserType string `json:"user_type,omitempty"`
	Country  string `json:"country,omitempty"`
	City     string `json:"city,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
}

// Register creates the Firebase account and the profile document. The profile
// document ID is the Firebase UID.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	if input.UserType != "sender" && input.UserType != "traveler" && input.UserType != "both" {
		return nil, errors.BadRequest("User type must be sender, traveler or both", nil)
	}

	uid, err := uc.authClient.CreateUser(ctx, input.Email, input.Password, input.FullName)
	if err != nil {
		return nil, errors.BadRequest("Failed to create account", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:                 uid,
		Email:              input.Email,
		FullName:           input.FullName,
		Phone:              input.Phone,
		UserType:           input.UserType,
		Country:            input.Country,
		City:               input.City,
		VerificationStatus: "unverified",
		CreatedAt:          now,
		LastActive:         now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	if input.UserType != "" && input.UserType != "sender" && input.UserType != "traveler" && input.UserType != "both" {
		return nil, errors.BadRequest("User type must be sender, traveler or both", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FullName = input.FullName
	user.Phone = input.Phone
	user.UserType = input.UserType
	user.Country = input.Country
	user.City = input.City
	user.PhotoURL = input.PhotoURL

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return uc.userRepo.GetByID(ctx, userID)
}
