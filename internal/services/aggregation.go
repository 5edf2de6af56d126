package services

import (
	"gorm.io/gorm"

	"eld_tracker/internal/models"
)

// tripTotals carries the per-type sums scanned out of trip_events.
type tripTotals struct {
	DrivingHours float64
	OnDutyHours  float64
	OffDutyHours float64
	SleeperHours float64
	MilesDriving float64
}

// RecalculateTripTotals rewrites a trip's derived totals from its events.
// Every sum collapses to 0 when the trip has no matching events. Called
// after every event write (insert, update and delete); total_mileage_today
// is client-supplied at creation and left alone here.
func RecalculateTripTotals(db *gorm.DB, tripID uint) error {
	var totals tripTotals
	err := db.Model(&models.TripEvent{}).
		Select(
			"COALESCE(SUM(CASE WHEN event_type = ? THEN duration ELSE 0 END), 0) AS driving_hours, "+
				"COALESCE(SUM(CASE WHEN event_type = ? THEN duration ELSE 0 END), 0) AS on_duty_hours, "+
				"COALESCE(SUM(CASE WHEN event_type = ? THEN duration ELSE 0 END), 0) AS off_duty_hours, "+
				"COALESCE(SUM(CASE WHEN event_type = ? THEN duration ELSE 0 END), 0) AS sleeper_hours, "+
				"COALESCE(SUM(CASE WHEN event_type = ? THEN miles_driven ELSE 0 END), 0) AS miles_driving",
			models.EventDriving, models.EventOnDuty, models.EventOffDuty,
			models.EventSleeper, models.EventDriving,
		).
		Where("trip_id = ?", tripID).
		Scan(&totals).Error
	if err != nil {
		return err
	}

	return db.Model(&models.Trip{}).
		Where("id = ?", tripID).
		Updates(map[string]interface{}{
			"total_driving_hours":  totals.DrivingHours,
			"total_on_duty_hours":  totals.OnDutyHours,
			"total_off_duty_hours": totals.OffDutyHours,
			"total_sleeper_hours":  totals.SleeperHours,
			"total_miles_driving":  totals.MilesDriving,
		}).Error
}
