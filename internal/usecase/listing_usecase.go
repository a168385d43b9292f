package usecase

import (
	"context"
	"strings"
	"time"

	"staygo/internal/domain/entity"
	"staygo/internal/domain/repository"
	"staygo/pkg/errors"
	"staygo/pkg/logger"
	"staygo/pkg/utils"
)

type ListingUseCase struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
}

func NewListingUseCase(listingRepo repository.ListingRepository, userRepo repository.UserRepository) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
		userRepo:    userRepo,
	}
}

type CreateListingInput struct {
	Title         string                `json:"title" validate:"required"`
	Description   string                `json:"description"`
	PricePerNight float64               `json:"price_per_night" validate:"required,gt=0"`
	City          string                `json:"city" validate:"required"`
	PropertyType  string                `json:"property_type" validate:"required"`
	Amenities     []string              `json:"amenities"`
	Nearby        []string              `json:"nearby"`
	Details       entity.ListingDetails `json:"details"`
	Photos        []string              `json:"photos"`
}

// CreateListing registers a new property for the caller. A plain user who
// creates their first listing is promoted to host as part of the same call.
func (uc *ListingUseCase) CreateListing(ctx context.Context, callerID string, input CreateListingInput) (*entity.Listing, error) {
	caller, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.BadRequest("Title is required", nil)
	}
	if input.PricePerNight <= 0 {
		return nil, errors.BadRequest("Price per night must be positive", nil)
	}
	if strings.TrimSpace(input.City) == "" {
		return nil, errors.BadRequest("City is required", nil)
	}

	now := time.Now()
	listing := &entity.Listing{
		HostID:        callerID,
		Title:         input.Title,
		Description:   input.Description,
		PricePerNight: input.PricePerNight,
		City:          strings.ToLower(strings.TrimSpace(input.City)),
		PropertyType:  input.PropertyType,
		Amenities:     input.Amenities,
		Nearby:        input.Nearby,
		Details:       input.Details,
		Photos:        input.Photos,
		Status:        entity.ListingStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	if caller.Role == entity.RoleUser {
		if err := uc.userRepo.UpdateRole(ctx, callerID, entity.RoleHost); err != nil {
			logger.Error("Failed to promote user to host: %v", err)
		}
	}

	return listing, nil
}

func (uc *ListingUseCase) GetListing(ctx context.Context, id string) (*entity.Listing, error) {
	if !utils.ValidRef(id) {
		return nil, errors.BadRequest("Invalid listing ID", nil)
	}
	return uc.listingRepo.GetByID(ctx, id)
}

type ListingQuery struct {
	City         string
	PropertyType string
	Status       string
	Page         int
	Limit        int
}

// ListListings serves the public search. Callers cannot select a status;
// only approved listings are visible here.
func (uc *ListingUseCase) ListListings(ctx context.Context, query ListingQuery) ([]*entity.Listing, int64, error) {
	pagination := utils.NewPaginationParams(query.Page, query.Limit)

	filter := repository.ListingFilter{
		City:         strings.ToLower(strings.TrimSpace(query.City)),
		PropertyType: query.PropertyType,
		Status:       entity.ListingStatusApproved,
	}

	return uc.listingRepo.List(ctx, filter, pagination.PageSize, pagination.Offset)
}

func (uc *ListingUseCase) ListByHost(ctx context.Context, hostID string) ([]*entity.Listing, error) {
	if !utils.ValidRef(hostID) {
		return nil, errors.BadRequest("Invalid host ID", nil)
	}
	return uc.listingRepo.ListByHostID(ctx, hostID)
}

type UpdateListingInput struct {
	Title         *string                `json:"title"`
	Description   *string                `json:"description"`
	PricePerNight *float64               `json:"price_per_night"`
	City          *string                `json:"city"`
	PropertyType  *string                `json:"property_type"`
	Amenities     []string               `json:"amenities"`
	Nearby        []string               `json:"nearby"`
	Details       *entity.ListingDetails `json:"details"`
	Photos        []string               `json:"photos"`
}

func (uc *ListingUseCase) UpdateListing(ctx context.Context, callerID, id string, input UpdateListingInput) (*entity.Listing, error) {
	listing, err := uc.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}

	caller, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if listing.HostID != callerID && !caller.IsAdmin() {
		return nil, errors.Forbidden("You don't have permission to update this listing", nil)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, errors.BadRequest("Title cannot be empty", nil)
		}
		listing.Title = *input.Title
	}
	if input.Description != nil {
		listing.Description = *input.Description
	}
	if input.PricePerNight != nil {
		if *input.PricePerNight <= 0 {
			return nil, errors.BadRequest("Price per night must be positive", nil)
		}
		listing.PricePerNight = *input.PricePerNight
	}
	if input.City != nil {
		if strings.TrimSpace(*input.City) == "" {
			return nil, errors.BadRequest("City cannot be empty", nil)
		}
		listing.City = strings.ToLower(strings.TrimSpace(*input.City))
	}
	if input.PropertyType != nil {
		listing.PropertyType = *input.PropertyType
	}
	if input.Amenities != nil {
		listing.Amenities = input.Amenities
	}
	if input.Nearby != nil {
		listing.Nearby = input.Nearby
	}
	if input.Details != nil {
		listing.Details = *input.Details
	}
	if input.Photos != nil {
		listing.Photos = input.Photos
	}

	listing.UpdatedAt = time.Now()

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

func (uc *ListingUseCase) DeleteListing(ctx context.Context, callerID, id string) error {
	listing, err := uc.GetListing(ctx, id)
	if err != nil {
		return err
	}

	caller, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return err
	}
	if listing.HostID != callerID && !caller.IsAdmin() {
		return errors.Forbidden("You don't have permission to delete this listing", nil)
	}

	return uc.listingRepo.Delete(ctx, id)
}

// Admin moderation.

func (uc *ListingUseCase) ListPending(ctx context.Context, callerID string, page, limit int) ([]*entity.Listing, int64, error) {
	if err := uc.requireAdmin(ctx, callerID); err != nil {
		return nil, 0, err
	}

	pagination := utils.NewPaginationParams(page, limit)
	filter := repository.ListingFilter{Status: entity.ListingStatusPending}
	return uc.listingRepo.List(ctx, filter, pagination.PageSize, pagination.Offset)
}

func (uc *ListingUseCase) ApproveListing(ctx context.Context, callerID, id string) (*entity.Listing, error) {
	return uc.moderate(ctx, callerID, id, entity.ListingStatusApproved)
}

func (uc *ListingUseCase) DeclineListing(ctx context.Context, callerID, id string) (*entity.Listing, error) {
	return uc.moderate(ctx, callerID, id, entity.ListingStatusDeclined)
}

func (uc *ListingUseCase) moderate(ctx context.Context, callerID, id, status string) (*entity.Listing, error) {
	if err := uc.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	listing, err := uc.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.listingRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	listing.Status = status
	listing.UpdatedAt = time.Now()
	return listing, nil
}

func (uc *ListingUseCase) requireAdmin(ctx context.Context, callerID string) error {
	caller, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return errors.Forbidden("Admin privileges required", nil)
	}
	return nil
}
