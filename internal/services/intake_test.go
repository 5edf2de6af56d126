package services

import (
	"testing"
	"time"

	"eld_tracker/internal/models"
)

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestIntakeShorthandCreatesDriverCarrierVehicle(t *testing.T) {
	db := setupTestDB(t)
	intake := NewTripIntake(db)

	trip, err := intake.Create(TripCreateRequest{
		Date:          "2025-03-01",
		DriverInitial: "AB",
		TruckNumber:   "TRK-1",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var driver models.Driver
	if err := db.Where("driver_initial = ?", "AB").First(&driver).Error; err != nil {
		t.Fatalf("Driver not created: %v", err)
	}
	if driver.FullName != "AB" || driver.LicenseNumber != "LIC_AB" {
		t.Errorf("driver placeholder fields wrong: %+v", driver)
	}

	var carrier models.Carrier
	if err := db.First(&carrier).Error; err != nil {
		t.Fatalf("Carrier not created: %v", err)
	}
	if carrier.Name != "Default Carrier" || carrier.DOTNumber != "DOT_DEFAULT" {
		t.Errorf("default carrier fields wrong: %+v", carrier)
	}

	var vehicle models.Vehicle
	if err := db.Where("truck_number = ?", "TRK-1").First(&vehicle).Error; err != nil {
		t.Fatalf("Vehicle not created: %v", err)
	}
	if vehicle.CarrierID != carrier.ID {
		t.Errorf("vehicle carrier = %d, want %d", vehicle.CarrierID, carrier.ID)
	}

	var counts = map[string]int64{}
	for name, model := range map[string]interface{}{
		"drivers":  &models.Driver{},
		"carriers": &models.Carrier{},
		"vehicles": &models.Vehicle{},
		"trips":    &models.Trip{},
	} {
		var n int64
		if err := db.Model(model).Count(&n).Error; err != nil {
			t.Fatalf("Count %s failed: %v", name, err)
		}
		counts[name] = n
	}
	for name, n := range counts {
		if n != 1 {
			t.Errorf("expected exactly one %s row, got %d", name, n)
		}
	}

	if trip.DriverID != driver.ID || trip.VehicleID != vehicle.ID {
		t.Errorf("trip references wrong rows: %+v", trip)
	}
	if trip.CycleRule != models.CycleRule70 {
		t.Errorf("cycle rule default = %q, want %q", trip.CycleRule, models.CycleRule70)
	}
}

func TestIntakeCarrierNameResolution(t *testing.T) {
	db := setupTestDB(t)
	intake := NewTripIntake(db)

	if _, err := intake.Create(TripCreateRequest{
		Date:          "2025-03-01",
		DriverInitial: "AB",
		CarrierName:   "Roadrunner Logistics",
		TruckNumber:   "TRK-1",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var carrier models.Carrier
	if err := db.Where("name = ?", "Roadrunner Logistics").First(&carrier).Error; err != nil {
		t.Fatalf("Carrier not created: %v", err)
	}
	if carrier.DOTNumber != "DOT_Roadrunner" {
		t.Errorf("dot_number = %q, want DOT_Roadrunner", carrier.DOTNumber)
	}

	// Second trip with no carrier_name must reuse the existing carrier.
	if _, err := intake.Create(TripCreateRequest{
		Date:          "2025-03-02",
		DriverInitial: "CD",
		TruckNumber:   "TRK-2",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.Carrier{}).Count(&count).Error; err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 carrier, got %d", count)
	}
	var vehicle models.Vehicle
	if err := db.Where("truck_number = ?", "TRK-2").First(&vehicle).Error; err != nil {
		t.Fatalf("Vehicle not created: %v", err)
	}
	if vehicle.CarrierID != carrier.ID {
		t.Errorf("vehicle carrier = %d, want %d", vehicle.CarrierID, carrier.ID)
	}
}

func TestIntakeExplicitReferencesBeatShorthand(t *testing.T) {
	db := setupTestDB(t)
	existing := seedTrip(t, db)
	intake := NewTripIntake(db)

	trip, err := intake.Create(TripCreateRequest{
		Date:          "2025-03-05",
		DriverID:      &existing.DriverID,
		VehicleID:     &existing.VehicleID,
		DriverInitial: "ZZ",
		TruckNumber:   "TRK-999",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if trip.DriverID != existing.DriverID {
		t.Errorf("shorthand overrode explicit driver: got %d, want %d", trip.DriverID, existing.DriverID)
	}
	if trip.VehicleID != existing.VehicleID {
		t.Errorf("shorthand overrode explicit vehicle: got %d, want %d", trip.VehicleID, existing.VehicleID)
	}

	var count int64
	if err := db.Model(&models.Driver{}).Where("driver_initial = ?", "ZZ").Count(&count).Error; err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("shorthand driver was created despite explicit reference")
	}
	if err := db.Model(&models.Vehicle{}).Where("truck_number = ?", "TRK-999").Count(&count).Error; err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("shorthand vehicle was created despite explicit reference")
	}
}

func TestIntakeExpandsLegacyLocations(t *testing.T) {
	db := setupTestDB(t)
	intake := NewTripIntake(db)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	intake.Now = fixedClock(now)

	location := func(address string) *LocationData {
		return &LocationData{Address: address, Latitude: floatPtr(40), Longitude: floatPtr(-74)}
	}

	trip, err := intake.Create(TripCreateRequest{
		Date:            "2025-03-01",
		DriverInitial:   "AB",
		TruckNumber:     "TRK-1",
		CurrentLocation: location("1 Current St"),
		PickupLocation:  location("2 Pickup St"),
		DropoffLocation: location("3 Dropoff St"),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var events []models.TripEvent
	if err := db.Where("trip_id = ?", trip.ID).Order("id asc").Find(&events).Error; err != nil {
		t.Fatalf("Loading events failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 legacy events, got %d", len(events))
	}

	want := []struct {
		eventType string
		notes     string
	}{
		{models.EventOther, "Current location"},
		{models.EventLoading, "Pickup location"},
		{models.EventUnloading, "Dropoff location"},
	}
	for i, w := range want {
		if events[i].EventType != w.eventType {
			t.Errorf("event %d type = %q, want %q", i, events[i].EventType, w.eventType)
		}
		if events[i].Notes != w.notes {
			t.Errorf("event %d notes = %q, want %q", i, events[i].Notes, w.notes)
		}
		if !events[i].Timestamp.Equal(now) {
			t.Errorf("event %d timestamp = %v, want injected clock %v", i, events[i].Timestamp, now)
		}
	}
}

func TestIntakeRollsBackOnInvalidNestedEvent(t *testing.T) {
	db := setupTestDB(t)
	intake := NewTripIntake(db)

	_, err := intake.Create(TripCreateRequest{
		Date:          "2025-03-01",
		DriverInitial: "AB",
		TruckNumber:   "TRK-1",
		InitialEvents: []EventData{
			eventAt("100 Main St", models.EventDriving, time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC), 2, 100),
			eventAt("200 Oak Ave", models.EventDriving, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), -1, 0),
		},
	})
	if err == nil {
		t.Fatal("expected creation to fail on the invalid nested event")
	}

	for name, model := range map[string]interface{}{
		"trips":   &models.Trip{},
		"events":  &models.TripEvent{},
		"drivers": &models.Driver{},
	} {
		var count int64
		if err := db.Model(model).Count(&count).Error; err != nil {
			t.Fatalf("Count %s failed: %v", name, err)
		}
		if count != 0 {
			t.Errorf("expected rollback to leave zero %s, got %d", name, count)
		}
	}
}

func TestIntakeRecalculatesTotalsFromInitialEvents(t *testing.T) {
	db := setupTestDB(t)
	intake := NewTripIntake(db)

	trip, err := intake.Create(TripCreateRequest{
		Date:          "2025-03-01",
		DriverInitial: "AB",
		TruckNumber:   "TRK-1",
		InitialEvents: []EventData{
			eventAt("100 Main St", models.EventDriving, time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC), 2, 100),
			eventAt("200 Oak Ave", models.EventOnDuty, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), 1.5, 0),
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if !almostEqual(trip.TotalDrivingHours, 2.0) {
		t.Errorf("TotalDrivingHours = %v, want 2.0", trip.TotalDrivingHours)
	}
	if !almostEqual(trip.TotalOnDutyHours, 1.5) {
		t.Errorf("TotalOnDutyHours = %v, want 1.5", trip.TotalOnDutyHours)
	}
	if !almostEqual(trip.TotalMilesDriving, 100.0) {
		t.Errorf("TotalMilesDriving = %v, want 100.0", trip.TotalMilesDriving)
	}
}

func TestIntakeRejectsBadDateAndCycleRule(t *testing.T) {
	db := setupTestDB(t)
	intake := NewTripIntake(db)

	if _, err := intake.Create(TripCreateRequest{
		Date:          "03/01/2025",
		DriverInitial: "AB",
		TruckNumber:   "TRK-1",
	}); err == nil {
		t.Error("expected error for malformed date")
	}

	if _, err := intake.Create(TripCreateRequest{
		Date:          "2025-03-01",
		DriverInitial: "AB",
		TruckNumber:   "TRK-1",
		CycleRule:     "90hr/9day",
	}); err == nil {
		t.Error("expected error for unknown cycle rule")
	}

	if _, err := intake.Create(TripCreateRequest{Date: "2025-03-01", TruckNumber: "TRK-1"}); err == nil {
		t.Error("expected error when neither driver_id nor driver_initial is given")
	}
}

func TestIntakeShorthandVehiclesLeaveVINUnset(t *testing.T) {
	db := setupTestDB(t)
	intake := NewTripIntake(db)

	// Two shorthand vehicles in a row: neither has a VIN, and the unset
	// values must not collide with each other.
	for i, truck := range []string{"TRK-1", "TRK-2"} {
		if _, err := intake.Create(TripCreateRequest{
			Date:          "2025-03-01",
			DriverInitial: "AB",
			TruckNumber:   truck,
		}); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}

	var vehicles []models.Vehicle
	if err := db.Find(&vehicles).Error; err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(vehicles) != 2 {
		t.Fatalf("expected 2 vehicles, got %d", len(vehicles))
	}
	for _, vehicle := range vehicles {
		if vehicle.VIN != nil {
			t.Errorf("vehicle %s: vin = %q, want unset", vehicle.TruckNumber, *vehicle.VIN)
		}
	}
}

func TestIntakeCarrierDOTNumberFromMultibyteName(t *testing.T) {
	db := setupTestDB(t)
	intake := NewTripIntake(db)

	if _, err := intake.Create(TripCreateRequest{
		Date:          "2025-03-01",
		DriverInitial: "AB",
		CarrierName:   "Übermärkte Transport GmbH",
		TruckNumber:   "TRK-1",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var carrier models.Carrier
	if err := db.Where("name = ?", "Übermärkte Transport GmbH").First(&carrier).Error; err != nil {
		t.Fatalf("Carrier not created: %v", err)
	}
	if carrier.DOTNumber != "DOT_Übermärkte" {
		t.Errorf("dot_number = %q, want DOT_Übermärkte", carrier.DOTNumber)
	}
}
