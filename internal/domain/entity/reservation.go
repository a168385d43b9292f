package entity

import (
	"time"
)

// Reservation statuses. The unified vocabulary: a reservation starts unpaid
// (or pending when the host must approve first), payment moves it to
// upcoming, and it ends in past, declined or canceled.
const (
	ReservationStatusUnpaid   = "unpaid"
	ReservationStatusPending  = "pending"
	ReservationStatusUpcoming = "upcoming"
	ReservationStatusDeclined = "declined"
	ReservationStatusPast     = "past"
	ReservationStatusCanceled = "canceled"
)

type Reservation struct {
	ID         string  `json:"id" firestore:"id"`
	UserID     string  `json:"user_id" firestore:"userId"`
	HostID     string  `json:"host_id,omitempty" firestore:"hostId,omitempty"`
	ListingID  string  `json:"listing_id" firestore:"listingId"`
	StartDate  string  `json:"start_date" firestore:"startDate"` // YYYY-MM-DD
	EndDate    string  `json:"end_date" firestore:"endDate"`     // YYYY-MM-DD
	Guests     int     `json:"guests" firestore:"guests"`
	TotalPrice float64 `json:"total_price" firestore:"totalPrice"`
	Status     string  `json:"status" firestore:"status"`
	PaymentID  string  `json:"payment_id,omitempty" firestore:"paymentId,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// ValidReservationStatus reports membership in the status enum.
func ValidReservationStatus(s string) bool {
	switch s {
	case ReservationStatusUnpaid, ReservationStatusPending,
		ReservationStatusUpcoming, ReservationStatusDeclined,
		ReservationStatusPast, ReservationStatusCanceled:
		return true
	}
	return false
}

// TerminalReservationStatus reports whether no further transition may leave s.
func TerminalReservationStatus(s string) bool {
	switch s {
	case ReservationStatusDeclined, ReservationStatusPast, ReservationStatusCanceled:
		return true
	}
	return false
}
