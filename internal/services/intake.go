package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"eld_tracker/internal/models"
)

// TripIntake turns a single creation request into one trip plus its initial
// events, all inside one transaction. The clock is injected so legacy
// location events get deterministic timestamps under test.
type TripIntake struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewTripIntake(db *gorm.DB) *TripIntake {
	return &TripIntake{DB: db, Now: time.Now}
}

// TripCreateRequest is the trip creation body. Explicit driver/vehicle ids
// always win over the shorthand fields (driver_initial, carrier_name,
// truck_number); the shorthands exist for clients that only know the
// logbook header values.
type TripCreateRequest struct {
	Date string `json:"date" binding:"required,datetime=2006-01-02"`

	DriverID   *uint `json:"driver_id"`
	CoDriverID *uint `json:"co_driver_id"`
	VehicleID  *uint `json:"vehicle_id"`

	DriverInitial string `json:"driver_initial"`
	CarrierName   string `json:"carrier_name"`
	TruckNumber   string `json:"truck_number"`

	ShipperAndCommodity string  `json:"shipper_and_commodity"`
	CycleRule           string  `json:"cycle_rule" binding:"omitempty,oneof=70hr/8day 60hr/7day"`
	TotalMileageToday   float64 `json:"total_mileage_today" binding:"gte=0"`
	Remarks             string  `json:"remarks"`

	InitialEvents []EventData `json:"initial_events" binding:"omitempty,dive"`

	// Legacy single-location fields, each expanded into one event.
	CurrentLocation *LocationData `json:"current_location"`
	PickupLocation  *LocationData `json:"pickup_location"`
	DropoffLocation *LocationData `json:"dropoff_location"`
}

// Create resolves the request's driver and vehicle, persists the trip and
// expands legacy locations plus initial events into trip events. Any nested
// failure rolls the whole creation back.
func (s *TripIntake) Create(req TripCreateRequest) (*models.Trip, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, validationErrorf("date must be formatted YYYY-MM-DD: %v", err)
	}

	cycleRule := req.CycleRule
	if cycleRule == "" {
		cycleRule = models.CycleRule70
	}
	if cycleRule != models.CycleRule70 && cycleRule != models.CycleRule60 {
		return nil, validationErrorf("cycle_rule must be %q or %q", models.CycleRule70, models.CycleRule60)
	}

	var trip *models.Trip
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		driverID, err := s.resolveDriver(tx, req)
		if err != nil {
			return err
		}
		vehicleID, err := s.resolveVehicle(tx, req)
		if err != nil {
			return err
		}
		if req.CoDriverID != nil {
			var coDriver models.Driver
			if err := tx.First(&coDriver, *req.CoDriverID).Error; err != nil {
				return err
			}
		}

		trip = &models.Trip{
			Date:                date,
			DriverID:            driverID,
			CoDriverID:          req.CoDriverID,
			VehicleID:           vehicleID,
			ShipperAndCommodity: req.ShipperAndCommodity,
			CycleRule:           cycleRule,
			TotalMileageToday:   req.TotalMileageToday,
			Remarks:             req.Remarks,
		}
		if err := tx.Create(trip).Error; err != nil {
			return err
		}

		for _, data := range append(s.legacyEvents(req), req.InitialEvents...) {
			if _, err := createEventTx(tx, trip.ID, data); err != nil {
				return err
			}
			if err := RecalculateTripTotals(tx, trip.ID); err != nil {
				return err
			}
		}

		// Re-read so the returned trip carries the recalculated totals.
		return tx.First(trip, trip.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return trip, nil
}

// legacyEvents expands the three single-location fields into event payloads,
// timestamped with the injected clock.
func (s *TripIntake) legacyEvents(req TripCreateRequest) []EventData {
	var events []EventData
	if req.CurrentLocation != nil {
		events = append(events, EventData{
			EventType:    models.EventOther,
			Timestamp:    s.Now(),
			Notes:        "Current location",
			LocationData: *req.CurrentLocation,
		})
	}
	if req.PickupLocation != nil {
		events = append(events, EventData{
			EventType:    models.EventLoading,
			Timestamp:    s.Now(),
			Notes:        "Pickup location",
			LocationData: *req.PickupLocation,
		})
	}
	if req.DropoffLocation != nil {
		events = append(events, EventData{
			EventType:    models.EventUnloading,
			Timestamp:    s.Now(),
			Notes:        "Dropoff location",
			LocationData: *req.DropoffLocation,
		})
	}
	return events
}

// resolveDriver prefers an explicit driver id and otherwise resolves the
// driver_initial shorthand, creating a placeholder driver when the initial
// is unknown.
func (s *TripIntake) resolveDriver(tx *gorm.DB, req TripCreateRequest) (uint, error) {
	if req.DriverID != nil {
		var driver models.Driver
		if err := tx.First(&driver, *req.DriverID).Error; err != nil {
			return 0, err
		}
		return driver.ID, nil
	}
	if req.DriverInitial == "" {
		return 0, validationErrorf("either driver_id or driver_initial is required")
	}

	var driver models.Driver
	err := tx.Where(models.Driver{DriverInitial: req.DriverInitial}).
		Attrs(models.Driver{
			FullName:      req.DriverInitial,
			LicenseNumber: "LIC_" + req.DriverInitial,
		}).
		FirstOrCreate(&driver).Error
	if err != nil {
		return 0, err
	}
	return driver.ID, nil
}

// resolveVehicle prefers an explicit vehicle id and otherwise resolves the
// truck_number shorthand. The carrier comes from carrier_name when given,
// else the first existing carrier, else a placeholder.
func (s *TripIntake) resolveVehicle(tx *gorm.DB, req TripCreateRequest) (uint, error) {
	if req.VehicleID != nil {
		var vehicle models.Vehicle
		if err := tx.First(&vehicle, *req.VehicleID).Error; err != nil {
			return 0, err
		}
		return vehicle.ID, nil
	}
	if req.TruckNumber == "" {
		return 0, validationErrorf("either vehicle_id or truck_number is required")
	}

	carrier, err := s.resolveCarrier(tx, req.CarrierName)
	if err != nil {
		return 0, err
	}

	var vehicle models.Vehicle
	err = tx.Where(models.Vehicle{TruckNumber: req.TruckNumber}).
		Attrs(models.Vehicle{CarrierID: carrier.ID}).
		FirstOrCreate(&vehicle).Error
	if err != nil {
		return 0, err
	}
	return vehicle.ID, nil
}

func (s *TripIntake) resolveCarrier(tx *gorm.DB, name string) (*models.Carrier, error) {
	var carrier models.Carrier
	if name != "" {
		// Slice runes, not bytes, so multibyte carrier names keep a
		// well-formed suffix.
		prefix := []rune(name)
		if len(prefix) > 10 {
			prefix = prefix[:10]
		}
		dot := "DOT_" + string(prefix)
		err := tx.Where(models.Carrier{Name: name}).
			Attrs(models.Carrier{DOTNumber: dot}).
			FirstOrCreate(&carrier).Error
		if err != nil {
			return nil, err
		}
		return &carrier, nil
	}

	err := tx.Order("id asc").First(&carrier).Error
	if err == nil {
		return &carrier, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	carrier = models.Carrier{Name: "Default Carrier", DOTNumber: "DOT_DEFAULT"}
	if err := tx.Create(&carrier).Error; err != nil {
		return nil, err
	}
	return &carrier, nil
}
