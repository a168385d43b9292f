package repository

import (
	"context"

	"staygo/internal/domain/entity"
)

type ReviewRepository interface {
	// CreateIfAbsent inserts the review only if no review exists for its
	// reservation id. The check and the insert are a single conditional
	// write; a duplicate yields a CONFLICT AppError.
	CreateIfAbsent(ctx context.Context, review *entity.Review) error

	GetByID(ctx context.Context, id string) (*entity.Review, error)
	GetByReservationID(ctx context.Context, reservationID string) (*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id string) error

	ListByPropertyID(ctx context.Context, propertyID string) ([]*entity.Review, error)
	ListByUserID(ctx context.Context, userID string) ([]*entity.Review, error)
	ListAll(ctx context.Context, limit, offset int) ([]*entity.Review, int64, error)
}
