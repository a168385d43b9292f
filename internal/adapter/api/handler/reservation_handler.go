package handler

import (
	"github.com/labstack/echo/v4"

	"staygo/internal/usecase"
	"staygo/pkg/response"
	"staygo/pkg/utils"
)

type ReservationHandler struct {
	reservationUseCase *usecase.ReservationUseCase
}

func NewReservationHandler(reservationUseCase *usecase.ReservationUseCase) *ReservationHandler {
	return &ReservationHandler{
		reservationUseCase: reservationUseCase,
	}
}

type createReservationRequest struct {
	ListingID  string  `json:"listing_id" validate:"required"`
	StartDate  string  `json:"start_date" validate:"required"`
	EndDate    string  `json:"end_date" validate:"required"`
	Guests     int     `json:"guests" validate:"required,min=1"`
	TotalPrice float64 `json:"total_price" validate:"gte=0"`
}

func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	var req createReservationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	reservation, err := h.reservationUseCase.CreateReservation(c.Request().Context(), uid, usecase.CreateReservationInput{
		ListingID:  req.ListingID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Guests:     req.Guests,
		TotalPrice: req.TotalPrice,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, reservation)
}

func (h *ReservationHandler) GetReservation(c echo.Context) error {
	uid := c.Get("uid").(string)

	reservation, err := h.reservationUseCase.GetReservation(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, reservation)
}

func (h *ReservationHandler) AcceptReservation(c echo.Context) error {
	uid := c.Get("uid").(string)

	reservation, err := h.reservationUseCase.Accept(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, reservation)
}

func (h *ReservationHandler) DeclineReservation(c echo.Context) error {
	uid := c.Get("uid").(string)

	reservation, err := h.reservationUseCase.Decline(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, reservation)
}

func (h *ReservationHandler) CancelReservation(c echo.Context) error {
	uid := c.Get("uid").(string)

	reservation, err := h.reservationUseCase.Cancel(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, reservation)
}

type updateReservationRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *ReservationHandler) UpdateReservation(c echo.Context) error {
	var req updateReservationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	reservation, err := h.reservationUseCase.UpdateReservation(c.Request().Context(), uid, c.Param("id"), usecase.UpdateReservationInput{
		Status: req.Status,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, reservation)
}

func (h *ReservationHandler) ListMyReservations(c echo.Context) error {
	uid := c.Get("uid").(string)

	reservations, err := h.reservationUseCase.ListByUser(c.Request().Context(), uid, uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, reservations)
}

func (h *ReservationHandler) ListByUser(c echo.Context) error {
	uid := c.Get("uid").(string)

	reservations, err := h.reservationUseCase.ListByUser(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, reservations)
}

func (h *ReservationHandler) ListByHost(c echo.Context) error {
	uid := c.Get("uid").(string)

	reservations, err := h.reservationUseCase.ListByHost(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, reservations)
}

// Admin handlers.

func (h *ReservationHandler) ListAllReservations(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	reservations, total, err := h.reservationUseCase.ListAll(c.Request().Context(), uid, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, reservations, total, pagination.Page, pagination.PageSize)
}

func (h *ReservationHandler) DeleteReservation(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.reservationUseCase.DeleteReservation(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Reservation deleted"})
}
