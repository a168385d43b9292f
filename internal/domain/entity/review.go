package entity

import (
	"time"
)

// Review is written by the guest of a reservation. One review per
// reservation; the reviewer must be the reservation's guest and the property
// must match the reserved listing.
type Review struct {
	ID            string    `json:"id" firestore:"id"`
	ReservationID string    `json:"reservation_id" firestore:"reservationId"`
	UserID        string    `json:"user_id" firestore:"userId"`
	PropertyID    string    `json:"property_id" firestore:"propertyId"`
	Rating        int       `json:"rating" firestore:"rating"` // 1-5
	Comment       string    `json:"comment,omitempty" firestore:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time `json:"updated_at" firestore:"updatedAt"`
}

// ReviewStats aggregates a property's reviews. An empty property yields the
// zero-filled shape, not an error.
type ReviewStats struct {
	PropertyID         string      `json:"property_id"`
	AverageRating      float64     `json:"average_rating"`
	TotalReviews       int         `json:"total_reviews"`
	RatingDistribution map[int]int `json:"rating_distribution"`
}

// EmptyReviewStats returns the zero-filled stats object for a property.
func EmptyReviewStats(propertyID string) *ReviewStats {
	return &ReviewStats{
		PropertyID:         propertyID,
		AverageRating:      0,
		TotalReviews:       0,
		RatingDistribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
}
