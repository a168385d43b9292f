package handler

import (
	"github.com/labstack/echo/v4"

	"staygo/internal/usecase"
	"staygo/pkg/response"
)

type PaymentHandler struct {
	paymentUseCase *usecase.PaymentUseCase
}

func NewPaymentHandler(paymentUseCase *usecase.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
	}
}

type processPaymentRequest struct {
	ReservationID string  `json:"reservation_id" validate:"required"`
	CardNumber    string  `json:"card_number" validate:"required"`
	CardHolder    string  `json:"card_holder" validate:"required"`
	Expiry        string  `json:"expiry" validate:"required"`
	CVV           string  `json:"cvv" validate:"required,min=3,max=4"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
}

func (h *PaymentHandler) ProcessPayment(c echo.Context) error {
	var req processPaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	payment, err := h.paymentUseCase.ProcessPayment(c.Request().Context(), uid, usecase.ProcessPaymentInput{
		ReservationID: req.ReservationID,
		CardNumber:    req.CardNumber,
		CardHolder:    req.CardHolder,
		Expiry:        req.Expiry,
		CVV:           req.CVV,
		Amount:        req.Amount,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, payment)
}

func (h *PaymentHandler) GetPayment(c echo.Context) error {
	uid := c.Get("uid").(string)

	payment, err := h.paymentUseCase.GetPayment(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, payment)
}

func (h *PaymentHandler) GetPaymentByReservation(c echo.Context) error {
	uid := c.Get("uid").(string)

	payment, err := h.paymentUseCase.GetPaymentByReservation(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, payment)
}
