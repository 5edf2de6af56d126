// internal/models/Vehicle.go
package models

import "gorm.io/gorm"

type Vehicle struct {
	gorm.Model
	TruckNumber  string  `json:"truck_number" gorm:"uniqueIndex;size:50" binding:"required"`
	Make         string  `json:"make" gorm:"size:50"`
	VehicleModel string  `json:"model" gorm:"column:model;size:50"`
	Year         *int    `json:"year"`
	VIN          *string `json:"vin" gorm:"column:vin;uniqueIndex;size:17"`
	LicensePlate string  `json:"license_plate" gorm:"size:20"`

	CarrierID uint    `json:"carrier_id" gorm:"index" binding:"required"`
	Carrier   Carrier `gorm:"foreignKey:CarrierID" json:"carrier,omitempty"`
}
