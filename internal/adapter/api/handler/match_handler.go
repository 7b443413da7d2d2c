package handler

import (
	"time"

	"carrylink/internal/usecase"
	"carrylink/pkg/response"

	"github.com/labstack/echo/v4"
)

type MatchHandler struct {
	matchUseCase *usecase.MatchUseCase
}

func NewMatchHandler(matchUseCase *usecase.MatchUseCase) *MatchHandler {
	return &MatchHandler{
		matchUseCase: matchUseCase,
	}
}

type createMatchRequest struct {
	SenderListingID   string `json:"sender_listing_id" validate:"required"`
	TravelerListingID string `json:"traveler_listing_id" validate:"required"`
}

type updateMatchRequest struct {
	Status           string    `json:"status,omitempty"`
	MeetingLocation  string    `json:"meeting_location,omitempty"`
	MeetingDate      time.Time `json:"meeting_date,omitempty"`
	MeetingConfirmed *bool     `json:"meeting_confirmed,omitempty"`
	AgreedPrice      *float64  `json:"agreed_price,omitempty"`
	PaymentStatus    string    `json:"payment_status,omitempty"`
}

type matchResponse struct {
	Match   interface{} `json:"match"`
	Existed bool        `json:"existed"`
}

func (h *MatchHandler) CreateMatch(c echo.Context) error {
	var req createMatchRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	match, existed, err := h.matchUseCase.CreateMatch(c.Request().Context(), uid, req.SenderListingID, req.TravelerListingID)
	if err != nil {
		return response.Error(c, err)
	}

	body := matchResponse{Match: match, Existed: existed}

	// Replaying the same pair returns the existing match with 200 instead of
	// 201.
	if existed {
		return response.Success(c, body)
	}
	return response.Created(c, body)
}

func (h *MatchHandler) ListMyMatches(c echo.Context) error {
	uid := c.Get("uid").(string)

	matches, err := h.matchUseCase.GetUserMatches(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, matches)
}

func (h *MatchHandler) GetMatch(c echo.Context) error {
	id := c.Param("id")
	uid := c.Get("uid").(string)

	match, err := h.matchUseCase.GetMatch(c.Request().Context(), id, uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, match)
}

func (h *MatchHandler) UpdateMatch(c echo.Context) error {
	id := c.Param("id")

	var req updateMatchRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	match, err := h.matchUseCase.UpdateMatch(c.Request().Context(), id, uid, usecase.UpdateMatchInput{
		Status:           req.Status,
		MeetingLocation:  req.MeetingLocation,
		MeetingDate:      req.MeetingDate,
		MeetingConfirmed: req.MeetingConfirmed,
		AgreedPrice:      req.AgreedPrice,
		PaymentStatus:    req.PaymentStatus,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, match)
}
