package handler

import (
	"carrylink/internal/usecase"
	"carrylink/pkg/response"

	"github.com/labstack/echo/v4"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
	}
}

type createReviewRequest struct {
	MatchID        string `json:"match_id" validate:"required"`
	Rating         int    `json:"rating" validate:"required,min=1,max=5"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	WouldRecommend bool   `json:"would_recommend"`
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	review, err := h.reviewUseCase.CreateReview(c.Request().Context(), uid, usecase.CreateReviewInput{
		MatchID:        req.MatchID,
		Rating:         req.Rating,
		Title:          req.Title,
		Content:        req.Content,
		WouldRecommend: req.WouldRecommend,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, review)
}
