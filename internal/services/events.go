package services

import (
	"time"

	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"eld_tracker/internal/models"
)

// EventData is the payload for creating a trip event, with the location
// embedded as loose address data rather than a foreign key.
type EventData struct {
	EventType   string    `json:"event_type" binding:"required,oneof=driving on_duty off_duty sleeper rest_break fuel_stop meal_break inspection loading unloading other"`
	Timestamp   time.Time `json:"timestamp" binding:"required"`
	Duration    float64   `json:"duration" binding:"gte=0"`
	MilesDriven float64   `json:"miles_driven" binding:"gte=0"`
	Notes       string    `json:"notes"`

	LocationData LocationData `json:"location_data" binding:"required"`
}

// Validate re-checks the binding constraints for callers that build
// EventData in code (trip intake legacy fields, the seed command).
func (e *EventData) Validate() error {
	valid := false
	for _, t := range models.EventTypes {
		if e.EventType == t {
			valid = true
			break
		}
	}
	if !valid {
		return validationErrorf("unknown event_type %q", e.EventType)
	}
	if e.Timestamp.IsZero() {
		return validationErrorf("event timestamp is required")
	}
	if e.Duration < 0 {
		return validationErrorf("event duration must not be negative")
	}
	if e.MilesDriven < 0 {
		return validationErrorf("miles_driven must not be negative")
	}
	return e.LocationData.Validate()
}

// createEventTx validates the payload, resolves its location and inserts the
// event inside the caller's transaction. Totals recompute is the caller's
// responsibility.
func createEventTx(tx *gorm.DB, tripID uint, data EventData) (*models.TripEvent, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}

	location, err := GetOrCreateLocation(tx, data.LocationData)
	if err != nil {
		return nil, err
	}

	event := models.TripEvent{
		TripID:      tripID,
		LocationID:  location.ID,
		EventType:   data.EventType,
		Timestamp:   data.Timestamp,
		Duration:    data.Duration,
		MilesDriven: data.MilesDriven,
		Notes:       data.Notes,
	}
	if err := tx.Create(&event).Error; err != nil {
		return nil, err
	}
	event.Location = *location
	return &event, nil
}

// CreateTripEvent persists one event for an existing trip and then
// recalculates the trip's totals. The recompute runs after the event commit;
// if it fails the event stays and the stored totals are stale until the next
// event write, which is logged rather than surfaced.
func CreateTripEvent(db *gorm.DB, tripID uint, data EventData) (*models.TripEvent, error) {
	var trip models.Trip
	if err := db.First(&trip, tripID).Error; err != nil {
		return nil, err
	}

	var event *models.TripEvent
	err := db.Transaction(func(tx *gorm.DB) error {
		created, err := createEventTx(tx, tripID, data)
		if err != nil {
			return err
		}
		event = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := RecalculateTripTotals(db, tripID); err != nil {
		logrus.WithError(err).WithField("trip_id", tripID).
			Warn("trip totals recompute failed; stored totals are stale")
	}
	return event, nil
}

// DeleteTripEvent removes one event and recalculates its trip's totals.
func DeleteTripEvent(db *gorm.DB, eventID uint) error {
	var event models.TripEvent
	if err := db.First(&event, eventID).Error; err != nil {
		return err
	}
	if err := db.Unscoped().Delete(&event).Error; err != nil {
		return err
	}
	if err := RecalculateTripTotals(db, event.TripID); err != nil {
		logrus.WithError(err).WithField("trip_id", event.TripID).
			Warn("trip totals recompute failed; stored totals are stale")
	}
	return nil
}
