package handler

import (
	"github.com/labstack/echo/v4"

	"staygo/internal/usecase"
	"staygo/pkg/response"
	"staygo/pkg/utils"
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
	ReservationID string `json:"reservation_id" validate:"required"`
	PropertyID    string `json:"property_id" validate:"required"`
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
	Comment       string `json:"comment"`
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
		ReservationID: req.ReservationID,
		PropertyID:    req.PropertyID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, review)
}

func (h *ReviewHandler) CanReview(c echo.Context) error {
	uid := c.Get("uid").(string)

	verdict, err := h.reviewUseCase.CanReview(
		c.Request().Context(),
		uid,
		c.QueryParam("reservation_id"),
		c.QueryParam("property_id"),
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, verdict)
}

func (h *ReviewHandler) GetReview(c echo.Context) error {
	review, err := h.reviewUseCase.GetReview(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, review)
}

func (h *ReviewHandler) GetReviewByReservation(c echo.Context) error {
	review, err := h.reviewUseCase.GetReviewByReservation(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, review)
}

type updateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	var req updateReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	review, err := h.reviewUseCase.UpdateReview(c.Request().Context(), uid, c.Param("id"), usecase.UpdateReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, review)
}

func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.reviewUseCase.DeleteReview(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Review deleted"})
}

// Public: a property's reviews with reviewer names.
func (h *ReviewHandler) ListByProperty(c echo.Context) error {
	reviews, err := h.reviewUseCase.ListByProperty(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, reviews)
}

// Public: the aggregate stats for a property.
func (h *ReviewHandler) GetStats(c echo.Context) error {
	stats, err := h.reviewUseCase.Stats(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, stats)
}

func (h *ReviewHandler) ListByUser(c echo.Context) error {
	reviews, err := h.reviewUseCase.ListByUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, reviews)
}

// Admin handler.
func (h *ReviewHandler) ListAllReviews(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	reviews, total, err := h.reviewUseCase.ListAll(c.Request().Context(), uid, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, reviews, total, pagination.Page, pagination.PageSize)
}
