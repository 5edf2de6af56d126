package services

import (
	"gorm.io/gorm"

	"eld_tracker/internal/models"
)

// Entity deletion with the cascade policy done explicitly in transactions:
// trips take their events with them, carriers take their vehicles, vehicles
// and primary drivers take their trips, co-driver references are nulled.
// Referenced locations, drivers and vehicles survive a trip deletion.
//
// Deletes are Unscoped (hard). A soft-deleted row would keep occupying the
// unique indexes (location address, driver initial, truck number, carrier
// name), blocking re-creation under the same key.

// DeleteTrip removes a trip and all of its events.
func DeleteTrip(db *gorm.DB, tripID uint) error {
	var trip models.Trip
	if err := db.First(&trip, tripID).Error; err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("trip_id = ?", trip.ID).Delete(&models.TripEvent{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&trip).Error
	})
}

// deleteTripsTx removes the given trips and their events inside tx.
func deleteTripsTx(tx *gorm.DB, cond string, arg interface{}) error {
	var tripIDs []uint
	if err := tx.Model(&models.Trip{}).Where(cond, arg).Pluck("id", &tripIDs).Error; err != nil {
		return err
	}
	if len(tripIDs) == 0 {
		return nil
	}
	if err := tx.Unscoped().Where("trip_id IN ?", tripIDs).Delete(&models.TripEvent{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Where("id IN ?", tripIDs).Delete(&models.Trip{}).Error
}

// DeleteDriver removes a driver, their primary-driver trips (with events)
// and clears any co-driver references to them.
func DeleteDriver(db *gorm.DB, driverID uint) error {
	var driver models.Driver
	if err := db.First(&driver, driverID).Error; err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := deleteTripsTx(tx, "driver_id = ?", driver.ID); err != nil {
			return err
		}
		if err := tx.Model(&models.Trip{}).
			Where("co_driver_id = ?", driver.ID).
			Update("co_driver_id", nil).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&driver).Error
	})
}

// DeleteVehicle removes a vehicle and the trips logged against it.
func DeleteVehicle(db *gorm.DB, vehicleID uint) error {
	var vehicle models.Vehicle
	if err := db.First(&vehicle, vehicleID).Error; err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := deleteTripsTx(tx, "vehicle_id = ?", vehicle.ID); err != nil {
			return err
		}
		return tx.Unscoped().Delete(&vehicle).Error
	})
}

// DeleteCarrier removes a carrier and cascades through its vehicles and
// their trips.
func DeleteCarrier(db *gorm.DB, carrierID uint) error {
	var carrier models.Carrier
	if err := db.First(&carrier, carrierID).Error; err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var vehicleIDs []uint
		if err := tx.Model(&models.Vehicle{}).
			Where("carrier_id = ?", carrier.ID).
			Pluck("id", &vehicleIDs).Error; err != nil {
			return err
		}
		for _, id := range vehicleIDs {
			if err := deleteTripsTx(tx, "vehicle_id = ?", id); err != nil {
				return err
			}
		}
		if len(vehicleIDs) > 0 {
			if err := tx.Unscoped().Where("id IN ?", vehicleIDs).Delete(&models.Vehicle{}).Error; err != nil {
				return err
			}
		}
		return tx.Unscoped().Delete(&carrier).Error
	})
}

// DeleteLocation removes a location and every event logged at it, then
// recalculates the totals of the trips those events belonged to.
func DeleteLocation(db *gorm.DB, locationID uint) error {
	var location models.Location
	if err := db.First(&location, locationID).Error; err != nil {
		return err
	}

	var tripIDs []uint
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.TripEvent{}).
			Where("location_id = ?", location.ID).
			Distinct().
			Pluck("trip_id", &tripIDs).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("location_id = ?", location.ID).Delete(&models.TripEvent{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&location).Error
	})
	if err != nil {
		return err
	}

	for _, tripID := range tripIDs {
		if err := RecalculateTripTotals(db, tripID); err != nil {
			return err
		}
	}
	return nil
}
