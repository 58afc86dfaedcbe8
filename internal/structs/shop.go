package structs

import (
	"time"

	"localmart/internal/geo"
)

type Shop struct {
	ID          string   `json:"id"`
	UserID      string   `json:"user_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Category    string   `json:"category"`
	ImgUrl      string   `json:"img_url"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Source      string   `json:"source"`
	// Delivery options drive the checkout screen: which handoff types the
	// shop offers and what it charges for delivery.
	DeliveryFee       int64     `json:"delivery_fee"`
	DeliveryAvailable bool      `json:"delivery_available"`
	PickupAvailable   bool      `json:"pickup_available"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// RankedShop is a shop decorated with read-side fields for list screens:
// distance from the caller's position and the caller's favourite mark.
type RankedShop struct {
	Shop
	DistanceKm  *float64 `json:"distance_km,omitempty"`
	IsFavourite bool     `json:"is_favourite"`
}

func (s *RankedShop) Coords() (lat, lon float64, ok bool) {
	if s.Latitude == nil || s.Longitude == nil {
		return 0, 0, false
	}
	return *s.Latitude, *s.Longitude, true
}

func (s *RankedShop) SetDistanceKm(km float64) {
	s.DistanceKm = &km
}

type CreateShop struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Category    string   `json:"category"`
	ImgUrl      string   `json:"img_url"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	// Absent delivery options fall back to service defaults: both handoff
	// types offered, fee from configuration.
	DeliveryFee       *int64 `json:"delivery_fee"`
	DeliveryAvailable *bool  `json:"delivery_available"`
	PickupAvailable   *bool  `json:"pickup_available"`
}

type PatchShop struct {
	ID                string   `json:"id"`
	Name              *string  `json:"name"`
	Description       *string  `json:"description"`
	Location          *string  `json:"location"`
	Category          *string  `json:"category"`
	ImgUrl            *string  `json:"img_url"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	DeliveryFee       *int64   `json:"delivery_fee"`
	DeliveryAvailable *bool    `json:"delivery_available"`
	PickupAvailable   *bool    `json:"pickup_available"`
}

type GetListShopRequest struct {
	Offset   int64            `json:"offset"`
	Limit    int64            `json:"limit"`
	Search   string           `json:"search"`
	Category string           `json:"category"`
	Origin   *geo.Coordinates `json:"origin"`
}

type GetListShopResponse struct {
	Count int64        `json:"count"`
	Shops []RankedShop `json:"shops"`
}
