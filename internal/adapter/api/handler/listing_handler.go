package handler

import (
	"github.com/labstack/echo/v4"

	"staygo/internal/domain/entity"
	"staygo/internal/usecase"
	"staygo/pkg/response"
	"staygo/pkg/utils"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	var req usecase.CreateListingInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	listing, err := h.listingUseCase.CreateListing(c.Request().Context(), uid, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	listing, err := h.listingUseCase.GetListing(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) ListListings(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	listings, total, err := h.listingUseCase.ListListings(c.Request().Context(), usecase.ListingQuery{
		City:         c.QueryParam("city"),
		PropertyType: c.QueryParam("property_type"),
		Page:         pagination.Page,
		Limit:        pagination.PageSize,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) ListMyListings(c echo.Context) error {
	uid := c.Get("uid").(string)

	listings, err := h.listingUseCase.ListByHost(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listings)
}

func (h *ListingHandler) UpdateListing(c echo.Context) error {
	var req usecase.UpdateListingInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	listing, err := h.listingUseCase.UpdateListing(c.Request().Context(), uid, c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.listingUseCase.DeleteListing(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Listing deleted"})
}

// Admin handlers.

func (h *ListingHandler) ListPending(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	listings, total, err := h.listingUseCase.ListPending(c.Request().Context(), uid, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) ApproveListing(c echo.Context) error {
	return h.moderate(c, entity.ListingStatusApproved)
}

func (h *ListingHandler) DeclineListing(c echo.Context) error {
	return h.moderate(c, entity.ListingStatusDeclined)
}

func (h *ListingHandler) moderate(c echo.Context, status string) error {
	uid := c.Get("uid").(string)

	var (
		listing *entity.Listing
		err     error
	)
	if status == entity.ListingStatusApproved {
		listing, err = h.listingUseCase.ApproveListing(c.Request().Context(), uid, c.Param("id"))
	} else {
		listing, err = h.listingUseCase.DeclineListing(c.Request().Context(), uid, c.Param("id"))
	}
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}
