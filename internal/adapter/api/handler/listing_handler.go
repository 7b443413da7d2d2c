package handler

import (
	"time"

	"carrylink/internal/domain/entity"
	"carrylink/internal/usecase"
	"carrylink/pkg/response"

	"github.com/labstack/echo/v4"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

type createListingRequest struct {
	Type          string                  `json:"type" validate:"required,oneof=sender traveler"`
	Origin        string                  `json:"origin" validate:"required"`
	Destination   string                  `json:"destination" validate:"required"`
	DepartureDate time.Time               `json:"departure_date,omitempty"`
	NeededByDate  time.Time               `json:"needed_by_date,omitempty"`
	FlexibleDates bool                    `json:"flexible_dates"`
	Price         float64                 `json:"price" validate:"gte=0"`
	PriceCurrency string                  `json:"price_currency,omitempty"`
	Negotiable    bool                    `json:"negotiable"`
	Sender        *entity.SenderDetails   `json:"sender,omitempty"`
	Traveler      *entity.TravelerDetails `json:"traveler,omitempty"`
}

type updateListingRequest struct {
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

func (h *ListingHandler) CreateListing(c echo.Context) error {
	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	listing, err := h.listingUseCase.CreateListing(c.Request().Context(), uid, usecase.CreateListingInput{
		Type:          req.Type,
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		NeededByDate:  req.NeededByDate,
		FlexibleDates: req.FlexibleDates,
		Price:         req.Price,
		PriceCurrency: req.PriceCurrency,
		Negotiable:    req.Negotiable,
		Sender:        req.Sender,
		Traveler:      req.Traveler,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	id := c.Param("id")

	// uid is optional here; anonymous views still return the listing but are
	// not counted.
	viewerID, _ := c.Get("uid").(string)

	listing, err := h.listingUseCase.GetListing(c.Request().Context(), id, viewerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) ListListings(c echo.Context) error {
	listingType := c.QueryParam("type")

	listings, err := h.listingUseCase.ListActiveListings(c.Request().Context(), listingType)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listings)
}

func (h *ListingHandler) ListMyListings(c echo.Context) error {
	uid := c.Get("uid").(string)

	listings, err := h.listingUseCase.ListMyListings(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listings)
}

func (h *ListingHandler) UpdateListing(c echo.Context) error {
	id := c.Param("id")

	var req updateListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	listing, err := h.listingUseCase.UpdateListing(c.Request().Context(), id, uid, usecase.UpdateListingInput{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		NeededByDate:  req.NeededByDate,
		FlexibleDates: req.FlexibleDates,
		Price:         req.Price,
		PriceCurrency: req.PriceCurrency,
		Negotiable:    req.Negotiable,
		Status:        req.Status,
		Sender:        req.Sender,
		Traveler:      req.Traveler,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	id := c.Param("id")
	uid := c.Get("uid").(string)

	if err := h.listingUseCase.DeleteListing(c.Request().Context(), id, uid); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"id": id, "status": entity.ListingStatusCancelled})
}

func (h *ListingHandler) FindCandidateMatches(c echo.Context) error {
	id := c.Param("id")
	uid := c.Get("uid").(string)

	candidates, err := h.listingUseCase.FindCandidateMatches(c.Request().Context(), id, uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, candidates)
}
