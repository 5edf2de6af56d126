// internal/models/Driver.go
package models

import (
	"gorm.io/gorm"
)

type Driver struct {
	gorm.Model
	DriverInitial string `json:"driver_initial" gorm:"uniqueIndex;size:10" binding:"required"`
	FullName      string `json:"full_name"`
	LicenseNumber string `json:"license_number" gorm:"uniqueIndex;size:50"`
	PhoneNumber   string `json:"phone_number" gorm:"size:20"`
	Email         string `json:"email"`

	// Trips where this driver is the primary driver. Co-driver trips are
	// reachable through trips.co_driver_id and keep their rows when the
	// driver goes away (SET NULL).
	Trips         []Trip `gorm:"foreignKey:DriverID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"trips,omitempty"`
	CoDriverTrips []Trip `gorm:"foreignKey:CoDriverID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"co_driver_trips,omitempty"`
}
