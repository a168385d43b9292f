package usecase

import (
	"context"
	"encoding/json"
	"math"

	"staygo/internal/domain/entity"
	"staygo/internal/domain/repository"
	"staygo/internal/infrastructure/cache"
	"staygo/pkg/errors"
	"staygo/pkg/logger"
	"staygo/pkg/utils"
)

type ReviewUseCase struct {
	reviewRepo      repository.ReviewRepository
	reservationRepo repository.ReservationRepository
	userRepo        repository.UserRepository
	statsCache      *cache.Cache

	// RequireCompletedStay demands reservation status "past" before a guest
	// may review. Off by default: the stay check was moved client-side on
	// purpose and only the eligibility preconditions below remain.
	RequireCompletedStay bool
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	reservationRepo repository.ReservationRepository,
	userRepo repository.UserRepository,
	statsCache *cache.Cache,
	requireCompletedStay bool,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:           reviewRepo,
		reservationRepo:      reservationRepo,
		userRepo:             userRepo,
		statsCache:           statsCache,
		RequireCompletedStay: requireCompletedStay,
	}
}

// Eligibility is the review-gate verdict plus the first failing reason.
type Eligibility struct {
	CanReview bool   `json:"can_review"`
	Reason    string `json:"reason,omitempty"`
}

// CanReview checks whether the caller may review the property through the
// given reservation: the caller must be the reservation's guest, the
// property must match the reserved listing, and no review may exist yet.
func (uc *ReviewUseCase) CanReview(ctx context.Context, callerID, reservationID, propertyID string) (*Eligibility, error) {
	if !utils.ValidRef(reservationID) {
		return nil, errors.BadRequest("Invalid reservation ID", nil)
	}
	if !utils.ValidRef(propertyID) {
		return nil, errors.BadRequest("Invalid property ID", nil)
	}

	reservation, err := uc.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if reservation.UserID != callerID {
		return &Eligibility{Reason: "Only the guest of the reservation can review"}, nil
	}
	if reservation.ListingID != propertyID {
		return &Eligibility{Reason: "Reservation does not belong to this property"}, nil
	}
	if uc.RequireCompletedStay && reservation.Status != entity.ReservationStatusPast {
		return &Eligibility{Reason: "Stay is not completed yet"}, nil
	}

	_, err = uc.reviewRepo.GetByReservationID(ctx, reservationID)
	if err == nil {
		return &Eligibility{Reason: "Review for this reservation already exists"}, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	return &Eligibility{CanReview: true}, nil
}

type CreateReviewInput struct {
	ReservationID string
	PropertyID    string
	Rating        int
	Comment       string
}

// CreateReview runs the full gate and then inserts conditionally, keyed on
// the reservation id, so two racing creates cannot both land.
func (uc *ReviewUseCase) CreateReview(ctx context.Context, callerID string, input CreateReviewInput) (*entity.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}

	eligibility, err := uc.CanReview(ctx, callerID, input.ReservationID, input.PropertyID)
	if err != nil {
		return nil, err
	}
	if !eligibility.CanReview {
		return nil, errors.BadRequest(eligibility.Reason, nil)
	}

	review := &entity.Review{
		ReservationID: input.ReservationID,
		UserID:        callerID,
		PropertyID:    input.PropertyID,
		Rating:        input.Rating,
		Comment:       input.Comment,
	}

	if err := uc.reviewRepo.CreateIfAbsent(ctx, review); err != nil {
		if errors.Is(err, "CONFLICT") {
			return nil, errors.Conflict("Review for this reservation already exists", nil)
		}
		return nil, err
	}

	uc.invalidateStats(ctx, input.PropertyID)
	return review, nil
}

func (uc *ReviewUseCase) GetReview(ctx context.Context, reviewID string) (*entity.Review, error) {
	if !utils.ValidRef(reviewID) {
		return nil, errors.BadRequest("Invalid review ID", nil)
	}
	return uc.reviewRepo.GetByID(ctx, reviewID)
}

func (uc *ReviewUseCase) GetReviewByReservation(ctx context.Context, reservationID string) (*entity.Review, error) {
	if !utils.ValidRef(reservationID) {
		return nil, errors.BadRequest("Invalid reservation ID", nil)
	}
	return uc.reviewRepo.GetByReservationID(ctx, reservationID)
}

type UpdateReviewInput struct {
	Rating  *int
	Comment *string
}

// UpdateReview patches rating and comment only, by the owner or an admin.
func (uc *ReviewUseCase) UpdateReview(ctx context.Context, callerID, reviewID string, input UpdateReviewInput) (*entity.Review, error) {
	review, err := uc.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if err := uc.requireOwnerOrAdmin(ctx, callerID, review.UserID); err != nil {
		return nil, err
	}

	if input.Rating == nil && input.Comment == nil {
		return nil, errors.BadRequest("No valid fields to update", nil)
	}

	if input.Rating != nil {
		if *input.Rating < 1 || *input.Rating > 5 {
			return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
		}
		review.Rating = *input.Rating
	}
	if input.Comment != nil {
		review.Comment = *input.Comment
	}

	if err := uc.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	uc.invalidateStats(ctx, review.PropertyID)
	return review, nil
}

func (uc *ReviewUseCase) DeleteReview(ctx context.Context, callerID, reviewID string) error {
	review, err := uc.GetReview(ctx, reviewID)
	if err != nil {
		return err
	}

	if err := uc.requireOwnerOrAdmin(ctx, callerID, review.UserID); err != nil {
		return err
	}

	if err := uc.reviewRepo.Delete(ctx, reviewID); err != nil {
		return err
	}

	uc.invalidateStats(ctx, review.PropertyID)
	return nil
}

// PropertyReview is a review enriched with the reviewer's public profile.
type PropertyReview struct {
	*entity.Review
	Reviewer *ReviewerInfo `json:"user,omitempty"`
}

type ReviewerInfo struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// ListByProperty returns a property's reviews newest-first with reviewer
// names populated. Public: no eligibility or auth involved.
func (uc *ReviewUseCase) ListByProperty(ctx context.Context, propertyID string) ([]*PropertyReview, error) {
	if !utils.ValidRef(propertyID) {
		return nil, errors.BadRequest("Invalid property ID", nil)
	}

	reviews, err := uc.reviewRepo.ListByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	result := make([]*PropertyReview, 0, len(reviews))
	for _, review := range reviews {
		enriched := &PropertyReview{Review: review}
		if user, err := uc.userRepo.GetByID(ctx, review.UserID); err == nil {
			name := user.Name
			if name == "" {
				name = user.Username
			}
			enriched.Reviewer = &ReviewerInfo{Name: name, Avatar: user.Avatar}
		}
		result = append(result, enriched)
	}

	return result, nil
}

func (uc *ReviewUseCase) ListByUser(ctx context.Context, userID string) ([]*entity.Review, error) {
	if !utils.ValidRef(userID) {
		return nil, errors.BadRequest("Invalid user ID", nil)
	}
	return uc.reviewRepo.ListByUserID(ctx, userID)
}

func (uc *ReviewUseCase) ListAll(ctx context.Context, callerID string, page, limit int) ([]*entity.Review, int64, error) {
	caller, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, 0, err
	}
	if !caller.IsAdmin() {
		return nil, 0, errors.Forbidden("Admin privileges required", nil)
	}

	pagination := utils.NewPaginationParams(page, limit)
	return uc.reviewRepo.ListAll(ctx, pagination.PageSize, pagination.Offset)
}

// Stats aggregates a property's reviews: count, mean rounded to two
// decimals, and a fixed 1-5 histogram. Zero reviews yields the zero-filled
// shape. Results are cached per property and invalidated on every write.
func (uc *ReviewUseCase) Stats(ctx context.Context, propertyID string) (*entity.ReviewStats, error) {
	if !utils.ValidRef(propertyID) {
		return nil, errors.BadRequest("Invalid property ID", nil)
	}

	cacheKey := statsCacheKey(propertyID)
	if raw, ok := uc.statsCache.Get(ctx, cacheKey); ok {
		var stats entity.ReviewStats
		if err := json.Unmarshal(raw, &stats); err == nil {
			return &stats, nil
		}
	}

	reviews, err := uc.reviewRepo.ListByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	stats := entity.EmptyReviewStats(propertyID)
	if len(reviews) > 0 {
		total := 0
		for _, review := range reviews {
			total += review.Rating
			if review.Rating >= 1 && review.Rating <= 5 {
				stats.RatingDistribution[review.Rating]++
			}
		}
		stats.TotalReviews = len(reviews)
		stats.AverageRating = math.Round(float64(total)/float64(len(reviews))*100) / 100
	}

	if raw, err := json.Marshal(stats); err == nil {
		uc.statsCache.Set(ctx, cacheKey, raw)
	}

	return stats, nil
}

func (uc *ReviewUseCase) requireOwnerOrAdmin(ctx context.Context, callerID, ownerID string) error {
	if callerID == ownerID {
		return nil
	}

	caller, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return errors.Forbidden("You can only modify your own reviews", nil)
	}
	return nil
}

func (uc *ReviewUseCase) invalidateStats(ctx context.Context, propertyID string) {
	uc.statsCache.Delete(ctx, statsCacheKey(propertyID))
	logger.Debug("Invalidated review stats cache for property %s", propertyID)
}

func statsCacheKey(propertyID string) string {
	return "reviews:stats:" + propertyID
}
