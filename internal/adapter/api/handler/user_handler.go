package handler

import (
	"carrylink/internal/usecase"
	"carrylink/pkg/response"
	"carrylink/pkg/utils"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userUseCase   *usecase.UserUseCase
	reviewUseCase *usecase.ReviewUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase, reviewUseCase *usecase.ReviewUseCase) *UserHandler {
	return &UserHandler{
		userUseCase:   userUseCase,
		reviewUseCase: reviewUseCase,
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone,omitempty"`
	UserType string `json:"user_type" validate:"required,oneof=sender traveler both"`
	Country  string `json:"country,omitempty"`
	City     string `json:"city,omitempty"`
}

type updateProfileRequest struct {
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	UserType string `json:"user_type,omitempty" validate:"omitempty,oneof=sender traveler both"`
	Country  string `json:"country,omitempty"`
	City     string `json:"city,omitempty"`
	PhotoURL string `json:"photo_url,omitempty" validate:"omitempty,url"`
}

func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.Register(c.Request().Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		UserType: req.UserType,
		Country:  req.Country,
		City:     req.City,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, user)
}

func (h *UserHandler) GetMyProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.userUseCase.GetProfile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) UpdateMyProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), uid, usecase.UpdateProfileInput{
		FullName: req.FullName,
		Phone:    req.Phone,
		UserType: req.UserType,
		Country:  req.Country,
		City:     req.City,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id := c.Param("id")

	user, err := h.userUseCase.GetProfile(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) GetUserReviews(c echo.Context) error {
	id := c.Param("id")
	pagination := utils.GetPaginationParams(c)

	reviews, err := h.reviewUseCase.GetUserReviews(c.Request().Context(), id, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, reviews)
}
