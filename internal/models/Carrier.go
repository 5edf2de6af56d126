// internal/models/Carrier.go
package models

import (
	"gorm.io/gorm"
)

// Carrier represents the trucking company a vehicle operates under.
type Carrier struct {
	gorm.Model

	Name      string `json:"name" gorm:"uniqueIndex;size:255" binding:"required"`
	DOTNumber string `json:"dot_number" gorm:"column:dot_number;uniqueIndex;size:20"`
	MCNumber  string `json:"mc_number" gorm:"column:mc_number;size:20"`
	Address   string `json:"address"`
	Phone     string `json:"phone" gorm:"size:20"`

	Vehicles []Vehicle `gorm:"foreignKey:CarrierID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"vehicles,omitempty"`
}
