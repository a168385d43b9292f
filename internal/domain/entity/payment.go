package entity

import (
	"time"
)

const (
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
	PaymentStatusPending = "pending"
)

// Payment records a single card payment attempt against a reservation.
// It is immutable once written. The raw PAN, CVV and expiry are never
// persisted; only the last four digits and a one-way hash of the cardholder
// name survive.
type Payment struct {
	ID             string    `json:"id" firestore:"id"`
	UserID         string    `json:"user_id" firestore:"userId"`
	ReservationID  string    `json:"reservation_id" firestore:"reservationId"`
	CardHolderHash string    `json:"-" firestore:"cardHolderHash"`
	CardLastFour   string    `json:"card_last_four" firestore:"cardLastFour"`
	Amount         float64   `json:"amount" firestore:"amount"`
	Status         string    `json:"status" firestore:"status"`
	TransactionID  string    `json:"transaction_id" firestore:"transactionId"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
}
