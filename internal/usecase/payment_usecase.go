package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"staygo/internal/domain/entity"
	"staygo/internal/domain/repository"
	"staygo/internal/domain/service"
	"staygo/pkg/errors"
	"staygo/pkg/logger"
	"staygo/pkg/utils"
)

type PaymentUseCase struct {
	paymentRepo     repository.PaymentRepository
	reservationRepo repository.ReservationRepository
	cardValidator   *service.CardValidator

	// now is swappable for tests.
	now func() time.Time
}

func NewPaymentUseCase(
	paymentRepo repository.PaymentRepository,
	reservationRepo repository.ReservationRepository,
	cardValidator *service.CardValidator,
) *PaymentUseCase {
	return &PaymentUseCase{
		paymentRepo:     paymentRepo,
		reservationRepo: reservationRepo,
		cardValidator:   cardValidator,
		now:             time.Now,
	}
}

type ProcessPaymentInput struct {
	ReservationID string
	CardNumber    string
	CardHolder    string
	Expiry        string
	CVV           string
	Amount        float64
}

// ProcessPayment records a card payment and confirms the reservation. All
// card validation happens before any read or write; the payment row and the
// reservation transition then commit together, conditional on the
// reservation still being unpaid, which is what makes a second concurrent
// attempt fail instead of double-charging.
//
// Only the last four digits and a one-way hash of the cardholder name are
// stored. The PAN, CVV and expiry never reach the repository.
func (uc *PaymentUseCase) ProcessPayment(ctx context.Context, callerID string, input ProcessPaymentInput) (*entity.Payment, error) {
	if err := uc.cardValidator.ValidateNumber(input.CardNumber); err != nil {
		return nil, err
	}
	if err := uc.cardValidator.ValidateExpiry(input.Expiry); err != nil {
		return nil, err
	}
	if input.CardHolder == "" {
		return nil, errors.BadRequest("Card holder name is required", nil)
	}
	if input.Amount <= 0 {
		return nil, errors.BadRequest("Amount must be positive", nil)
	}
	if !utils.ValidRef(input.ReservationID) {
		return nil, errors.BadRequest("Invalid reservation ID", nil)
	}

	reservation, err := uc.reservationRepo.GetByID(ctx, input.ReservationID)
	if err != nil {
		return nil, err
	}

	if reservation.UserID != callerID {
		return nil, errors.Forbidden("You are not allowed to pay for this reservation", nil)
	}

	// Fast-path reject for the common repeat request. The transactional
	// guard below still covers the racing case this check cannot see.
	existing, err := uc.paymentRepo.GetByReservationID(ctx, input.ReservationID)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}
	if existing != nil && existing.Status == entity.PaymentStatusSuccess {
		return nil, errors.Conflict("Payment already processed for this reservation", nil)
	}

	payment := &entity.Payment{
		UserID:         callerID,
		ReservationID:  input.ReservationID,
		CardHolderHash: hashString(input.CardHolder),
		CardLastFour:   service.LastFour(input.CardNumber),
		Amount:         input.Amount,
		Status:         entity.PaymentStatusSuccess,
		TransactionID:  uc.transactionID(callerID, input.ReservationID),
	}

	from := []string{entity.ReservationStatusUnpaid, entity.ReservationStatusPending}
	err = uc.paymentRepo.CreateWithReservationTransition(ctx, payment, from, entity.ReservationStatusUpcoming)
	if err != nil {
		if errors.Is(err, "CONFLICT") {
			return nil, errors.Conflict("Payment already processed for this reservation", nil)
		}
		return nil, err
	}

	logger.Info("Payment %s (txn %s) recorded for reservation %s", payment.ID, payment.TransactionID, input.ReservationID)
	return payment, nil
}

func (uc *PaymentUseCase) GetPayment(ctx context.Context, callerID, paymentID string) (*entity.Payment, error) {
	if !utils.ValidRef(paymentID) {
		return nil, errors.BadRequest("Invalid payment ID", nil)
	}

	payment, err := uc.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if payment.UserID != callerID {
		return nil, errors.Forbidden("You are not allowed to view this payment", nil)
	}

	return payment, nil
}

func (uc *PaymentUseCase) GetPaymentByReservation(ctx context.Context, callerID, reservationID string) (*entity.Payment, error) {
	if !utils.ValidRef(reservationID) {
		return nil, errors.BadRequest("Invalid reservation ID", nil)
	}

	payment, err := uc.paymentRepo.GetByReservationID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if payment.UserID != callerID {
		return nil, errors.Forbidden("You are not allowed to view this payment", nil)
	}

	return payment, nil
}

// transactionID derives a display/reference token from the caller, the
// reservation and the current instant. It is not a security credential.
func (uc *PaymentUseCase) transactionID(userID, reservationID string) string {
	return hashString(userID + reservationID + uc.now().Format(time.RFC3339Nano))[:16]
}

func hashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
