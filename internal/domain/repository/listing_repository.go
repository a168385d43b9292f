package repository

import (
	"context"

	"staygo/internal/domain/entity"
)

type ListingFilter struct {
	City         string
	Status       string
	PropertyType string
}

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	Update(ctx context.Context, listing *entity.Listing) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListingFilter, limit, offset int) ([]*entity.Listing, int64, error)
	ListByHostID(ctx context.Context, hostID string) ([]*entity.Listing, error)
}
