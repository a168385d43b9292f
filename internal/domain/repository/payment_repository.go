package repository

import (
	"context"

	"staygo/internal/domain/entity"
)

type PaymentRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	GetByReservationID(ctx context.Context, reservationID string) (*entity.Payment, error)

	// CreateWithReservationTransition writes the payment record and moves the
	// underlying reservation from one of `from` to `to` atomically, stamping
	// the reservation's payment id. If the reservation already left the
	// eligible states (a concurrent payment won), nothing is written and a
	// CONFLICT AppError is returned.
	CreateWithReservationTransition(ctx context.Context, payment *entity.Payment, from []string, to string) error
}
