// internal/models/Trip.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// Cycle rules a trip can be logged under.
const (
	CycleRule70 = "70hr/8day"
	CycleRule60 = "60hr/7day"
)

// Trip is the main log record for one driver/vehicle assignment.
//
// The six Total* fields are derived from the trip's events and rewritten by
// services.RecalculateTripTotals after every event write. Clients cannot set
// them directly.
type Trip struct {
	gorm.Model

	Date time.Time `json:"date" gorm:"index:idx_trips_date_driver,priority:1;index:idx_trips_vehicle_date,priority:2"`

	DriverID   uint    `json:"driver_id" gorm:"index:idx_trips_date_driver,priority:2"`
	Driver     Driver  `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
	CoDriverID *uint   `json:"co_driver_id"`
	CoDriver   *Driver `gorm:"foreignKey:CoDriverID" json:"co_driver,omitempty"`
	VehicleID  uint    `json:"vehicle_id" gorm:"index:idx_trips_vehicle_date,priority:1"`
	Vehicle    Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`

	ShipperAndCommodity string `json:"shipper_and_commodity" gorm:"size:255"`
	CycleRule           string `json:"cycle_rule" gorm:"size:20;default:70hr/8day"`

	// Derived totals, recalculated from trip events.
	TotalMilesDriving float64 `json:"total_miles_driving" gorm:"default:0"`
	TotalMileageToday float64 `json:"total_mileage_today" gorm:"default:0"`
	TotalDrivingHours float64 `json:"total_driving_hours" gorm:"default:0"`
	TotalOnDutyHours  float64 `json:"total_on_duty_hours" gorm:"default:0"`
	TotalOffDutyHours float64 `json:"total_off_duty_hours" gorm:"default:0"`
	TotalSleeperHours float64 `json:"total_sleeper_hours" gorm:"default:0"`

	Remarks     string `json:"remarks"`
	IsCompleted bool   `json:"is_completed" gorm:"default:false"`

	Events []TripEvent `gorm:"foreignKey:TripID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"events,omitempty"`
}

// CycleHoursUsed is the duty-clock consumption for the cycle rule:
// driving hours plus on-duty (not driving) hours.
func (t *Trip) CycleHoursUsed() float64 {
	return t.TotalDrivingHours + t.TotalOnDutyHours
}
