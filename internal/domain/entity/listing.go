package entity

import (
	"time"
)

const (
	ListingStatusPending  = "pending"
	ListingStatusApproved = "approved"
	ListingStatusDeclined = "declined"
)

type ListingDetails struct {
	Rooms     int `json:"rooms" firestore:"rooms"`
	Guests    int `json:"guests" firestore:"guests"`
	Beds      int `json:"beds" firestore:"beds"`
	Bathrooms int `json:"bathrooms" firestore:"bathrooms"`
}

type Listing struct {
	ID            string         `json:"id" firestore:"id"`
	HostID        string         `json:"host_id" firestore:"hostId"`
	Title         string         `json:"title" firestore:"title"`
	Description   string         `json:"description" firestore:"description"`
	PricePerNight float64        `json:"price_per_night" firestore:"pricePerNight"`
	City          string         `json:"city" firestore:"city"` // stored lowercase
	PropertyType  string         `json:"property_type" firestore:"propertyType"`
	Amenities     []string       `json:"amenities" firestore:"amenities"`
	Nearby        []string       `json:"nearby" firestore:"nearby"`
	Details       ListingDetails `json:"details" firestore:"details"`
	Photos        []string       `json:"photos" firestore:"photos"`
	Status        string         `json:"status" firestore:"status"` // pending, approved, declined

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
