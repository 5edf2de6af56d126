package models

import (
	"gorm.io/gorm"
)

// Location is a normalized place record - one row per unique address.
// Trip events reference locations instead of carrying address copies.
type Location struct {
	gorm.Model

	Address   string  `json:"address" gorm:"uniqueIndex;size:255" binding:"required"`
	Latitude  float64 `json:"latitude" binding:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" binding:"gte=-180,lte=180"`

	City       string `json:"city" gorm:"size:100;index:idx_locations_city_state"`
	State      string `json:"state" gorm:"size:50;index:idx_locations_city_state"`
	Country    string `json:"country" gorm:"size:50;default:USA"`
	PostalCode string `json:"postal_code" gorm:"size:20"`

	// Associations
	TripEvents []TripEvent `gorm:"foreignKey:LocationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"trip_events,omitempty"`
}
