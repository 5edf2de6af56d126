package services

import (
	"math"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"eld_tracker/internal/config"
	"eld_tracker/internal/models"
)

// setupTestDB opens an in-memory database with the full schema. Capped to a
// single connection because every sqlite :memory: connection is its own
// database.
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func floatPtr(v float64) *float64 { return &v }

// seedTrip creates the minimum driver/carrier/vehicle/trip chain tests hang
// events off.
func seedTrip(t *testing.T, db *gorm.DB) models.Trip {
	driver := models.Driver{DriverInitial: "JD", FullName: "John Doe", LicenseNumber: "LIC_JD"}
	if err := db.Create(&driver).Error; err != nil {
		t.Fatalf("Failed to create driver: %v", err)
	}
	carrier := models.Carrier{Name: "Acme Freight", DOTNumber: "DOT12345"}
	if err := db.Create(&carrier).Error; err != nil {
		t.Fatalf("Failed to create carrier: %v", err)
	}
	vehicle := models.Vehicle{TruckNumber: "TRK-100", CarrierID: carrier.ID}
	if err := db.Create(&vehicle).Error; err != nil {
		t.Fatalf("Failed to create vehicle: %v", err)
	}
	trip := models.Trip{
		Date:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		DriverID:  driver.ID,
		VehicleID: vehicle.ID,
		CycleRule: models.CycleRule70,
	}
	if err := db.Create(&trip).Error; err != nil {
		t.Fatalf("Failed to create trip: %v", err)
	}
	return trip
}

func eventAt(address string, eventType string, ts time.Time, duration, miles float64) EventData {
	return EventData{
		EventType:   eventType,
		Timestamp:   ts,
		Duration:    duration,
		MilesDriven: miles,
		LocationData: LocationData{
			Address:   address,
			Latitude:  floatPtr(41.878),
			Longitude: floatPtr(-87.629),
			City:      "Chicago",
			State:     "IL",
		},
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
