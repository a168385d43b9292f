package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"staygo/internal/domain/entity"
	"staygo/internal/domain/repository"
	"staygo/pkg/errors"
)

type firestorePaymentRepository struct {
	client *firestore.Client
}

func NewFirestorePaymentRepository(client *firestore.Client) repository.PaymentRepository {
	return &firestorePaymentRepository{
		client: client,
	}
}

func (r *firestorePaymentRepository) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	doc, err := r.client.Collection("payments").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Payment", err)
		}
		return nil, errors.Internal("Failed to get payment", err)
	}

	var payment entity.Payment
	if err := doc.DataTo(&payment); err != nil {
		return nil, errors.Internal("Failed to parse payment data", err)
	}

	return &payment, nil
}

func (r *firestorePaymentRepository) GetByReservationID(ctx context.Context, reservationID string) (*entity.Payment, error) {
	query := r.client.Collection("payments").Where("reservationId", "==", reservationID).Limit(1)
	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Payment for reservation", nil)
		}
		return nil, errors.Internal("Failed to query payment", err)
	}

	var payment entity.Payment
	if err := doc.DataTo(&payment); err != nil {
		return nil, errors.Internal("Failed to parse payment data", err)
	}

	return &payment, nil
}

// CreateWithReservationTransition writes the payment and flips the
// reservation status in one Firestore transaction. The status read inside
// the transaction is the single-writer guard: a reservation that already
// left the eligible states aborts the whole write, so at most one success
// payment can ever land per reservation.
func (r *firestorePaymentRepository) CreateWithReservationTransition(ctx context.Context, payment *entity.Payment, from []string, to string) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	payment.CreatedAt = time.Now()

	paymentRef := r.client.Collection("payments").Doc(payment.ID)
	reservationRef := r.client.Collection("reservations").Doc(payment.ReservationID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(reservationRef)
		if err != nil {
			return err
		}

		var reservation entity.Reservation
		if err := doc.DataTo(&reservation); err != nil {
			return err
		}

		eligible := false
		for _, s := range from {
			if reservation.Status == s {
				eligible = true
				break
			}
		}
		if !eligible {
			return errors.Conflict("Payment already processed for this reservation", nil)
		}

		reservation.Status = to
		reservation.PaymentID = payment.ID
		reservation.UpdatedAt = time.Now()

		if err := tx.Set(paymentRef, payment); err != nil {
			return err
		}
		return tx.Set(reservationRef, &reservation)
	})

	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Reservation", err)
		}
		if errors.Is(err, "CONFLICT") {
			return err
		}
		return errors.Internal("Failed to record payment", err)
	}
	return nil
}
