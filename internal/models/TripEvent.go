package models

import (
	"time"

	"gorm.io/gorm"
)

// Duty-status and stop event types a trip can log.
const (
	EventDriving    = "driving"
	EventOnDuty     = "on_duty"
	EventOffDuty    = "off_duty"
	EventSleeper    = "sleeper"
	EventRestBreak  = "rest_break"
	EventFuelStop   = "fuel_stop"
	EventMealBreak  = "meal_break"
	EventInspection = "inspection"
	EventLoading    = "loading"
	EventUnloading  = "unloading"
	EventOther      = "other"
)

// EventTypes lists every accepted event_type value.
var EventTypes = []string{
	EventDriving, EventOnDuty, EventOffDuty, EventSleeper,
	EventRestBreak, EventFuelStop, EventMealBreak, EventInspection,
	EventLoading, EventUnloading, EventOther,
}

// TripEvent is a single timestamped occurrence during a trip: a driving
// segment, a duty-status change, or a stop, tied to one location.
type TripEvent struct {
	gorm.Model

	TripID     uint     `json:"trip_id" gorm:"index:idx_trip_events_trip_ts,priority:1"`
	Trip       Trip     `gorm:"foreignKey:TripID" json:"-"`
	LocationID uint     `json:"location_id" gorm:"index:idx_trip_events_loc_ts,priority:1"`
	Location   Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`

	EventType string    `json:"event_type" gorm:"size:20;index:idx_trip_events_type_ts,priority:1"`
	Timestamp time.Time `json:"timestamp" gorm:"index:idx_trip_events_trip_ts,priority:2;index:idx_trip_events_type_ts,priority:2;index:idx_trip_events_loc_ts,priority:2"`

	// Duration in hours. Only meaningful for duty-status events (driving,
	// on_duty, off_duty, sleeper); zero by convention otherwise.
	Duration float64 `json:"duration" gorm:"default:0"`

	// Miles driven during the event. Only meaningful for driving events.
	MilesDriven float64 `json:"miles_driven" gorm:"default:0"`

	Notes string `json:"notes"`
}
