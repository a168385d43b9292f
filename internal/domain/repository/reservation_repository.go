package repository

import (
	"context"

	"staygo/internal/domain/entity"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	GetByID(ctx context.Context, id string) (*entity.Reservation, error)
	Delete(ctx context.Context, id string) error
	ListByUserID(ctx context.Context, userID string) ([]*entity.Reservation, error)
	ListByHostID(ctx context.Context, hostID string) ([]*entity.Reservation, error)
	ListAll(ctx context.Context, limit, offset int) ([]*entity.Reservation, int64, error)

	// UpdateStatus unconditionally sets the status field.
	UpdateStatus(ctx context.Context, id, status string) error

	// TransitionStatus sets the status to `to` only if the current status is
	// one of `from`, in a single conditional write. It returns a CONFLICT
	// AppError when the reservation is no longer in an eligible state, which
	// is what closes the concurrent double-transition race.
	TransitionStatus(ctx context.Context, id string, from []string, to string) error

	// LinkBetween reports whether any reservation links the two users as
	// guest and host, in either direction.
	LinkBetween(ctx context.Context, userA, userB string) (bool, error)
}
