package services

import (
	"testing"
	"time"

	"eld_tracker/internal/models"
)

func TestTotalsRecalculatedOnEventInsert(t *testing.T) {
	db := setupTestDB(t)
	trip := seedTrip(t, db)
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	events := []EventData{
		eventAt("100 Main St", models.EventDriving, base, 2.5, 120),
		eventAt("200 Oak Ave", models.EventOnDuty, base.Add(3*time.Hour), 1.0, 0),
		eventAt("300 Pine Rd", models.EventOffDuty, base.Add(5*time.Hour), 3.0, 0),
		eventAt("400 Elm St", models.EventSleeper, base.Add(9*time.Hour), 8.0, 0),
		eventAt("500 Cedar Ln", models.EventFuelStop, base.Add(18*time.Hour), 0, 0),
		eventAt("600 Birch Blvd", models.EventDriving, base.Add(19*time.Hour), 1.5, 80),
	}
	for _, data := range events {
		if _, err := CreateTripEvent(db, trip.ID, data); err != nil {
			t.Fatalf("CreateTripEvent failed: %v", err)
		}
	}

	var stored models.Trip
	if err := db.First(&stored, trip.ID).Error; err != nil {
		t.Fatalf("Failed to reload trip: %v", err)
	}

	if !almostEqual(stored.TotalDrivingHours, 4.0) {
		t.Errorf("TotalDrivingHours = %v, want 4.0", stored.TotalDrivingHours)
	}
	if !almostEqual(stored.TotalOnDutyHours, 1.0) {
		t.Errorf("TotalOnDutyHours = %v, want 1.0", stored.TotalOnDutyHours)
	}
	if !almostEqual(stored.TotalOffDutyHours, 3.0) {
		t.Errorf("TotalOffDutyHours = %v, want 3.0", stored.TotalOffDutyHours)
	}
	if !almostEqual(stored.TotalSleeperHours, 8.0) {
		t.Errorf("TotalSleeperHours = %v, want 8.0", stored.TotalSleeperHours)
	}
	if !almostEqual(stored.TotalMilesDriving, 200.0) {
		t.Errorf("TotalMilesDriving = %v, want 200.0", stored.TotalMilesDriving)
	}
	if !almostEqual(stored.CycleHoursUsed(), 5.0) {
		t.Errorf("CycleHoursUsed = %v, want 5.0", stored.CycleHoursUsed())
	}
}

func TestTotalsRecalculatedOnEventDelete(t *testing.T) {
	db := setupTestDB(t)
	trip := seedTrip(t, db)
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	first, err := CreateTripEvent(db, trip.ID, eventAt("100 Main St", models.EventDriving, base, 2.5, 120))
	if err != nil {
		t.Fatalf("CreateTripEvent failed: %v", err)
	}
	if _, err := CreateTripEvent(db, trip.ID, eventAt("200 Oak Ave", models.EventDriving, base.Add(3*time.Hour), 1.5, 80)); err != nil {
		t.Fatalf("CreateTripEvent failed: %v", err)
	}

	if err := DeleteTripEvent(db, first.ID); err != nil {
		t.Fatalf("DeleteTripEvent failed: %v", err)
	}

	var stored models.Trip
	if err := db.First(&stored, trip.ID).Error; err != nil {
		t.Fatalf("Failed to reload trip: %v", err)
	}
	if !almostEqual(stored.TotalDrivingHours, 1.5) {
		t.Errorf("TotalDrivingHours after delete = %v, want 1.5", stored.TotalDrivingHours)
	}
	if !almostEqual(stored.TotalMilesDriving, 80.0) {
		t.Errorf("TotalMilesDriving after delete = %v, want 80.0", stored.TotalMilesDriving)
	}
}

func TestTotalsZeroWithoutMatchingEvents(t *testing.T) {
	db := setupTestDB(t)
	trip := seedTrip(t, db)

	// Only a non-duty event: every duty sum must collapse to zero, not null.
	if _, err := CreateTripEvent(db, trip.ID, eventAt("100 Main St", models.EventInspection, time.Now(), 0, 0)); err != nil {
		t.Fatalf("CreateTripEvent failed: %v", err)
	}

	var stored models.Trip
	if err := db.First(&stored, trip.ID).Error; err != nil {
		t.Fatalf("Failed to reload trip: %v", err)
	}
	if stored.TotalDrivingHours != 0 || stored.TotalOnDutyHours != 0 ||
		stored.TotalOffDutyHours != 0 || stored.TotalSleeperHours != 0 ||
		stored.TotalMilesDriving != 0 {
		t.Errorf("expected all totals zero, got %+v", stored)
	}
}

func TestLocationDeduplicatedByAddress(t *testing.T) {
	db := setupTestDB(t)
	trip := seedTrip(t, db)
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	first, err := CreateTripEvent(db, trip.ID, eventAt("700 Shared Way", models.EventDriving, base, 1, 50))
	if err != nil {
		t.Fatalf("CreateTripEvent failed: %v", err)
	}
	second, err := CreateTripEvent(db, trip.ID, eventAt("700 Shared Way", models.EventFuelStop, base.Add(time.Hour), 0, 0))
	if err != nil {
		t.Fatalf("CreateTripEvent failed: %v", err)
	}

	if first.LocationID != second.LocationID {
		t.Errorf("events at the same address got different locations: %d vs %d", first.LocationID, second.LocationID)
	}

	var count int64
	if err := db.Model(&models.Location{}).Where("address = ?", "700 Shared Way").Count(&count).Error; err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 location row, got %d", count)
	}
}

func TestCreateEventRejectsBadPayloads(t *testing.T) {
	db := setupTestDB(t)
	trip := seedTrip(t, db)

	cases := []struct {
		name string
		data EventData
	}{
		{"negative duration", eventAt("100 Main St", models.EventDriving, time.Now(), -1, 0)},
		{"negative miles", eventAt("100 Main St", models.EventDriving, time.Now(), 1, -5)},
		{"unknown type", eventAt("100 Main St", "teleporting", time.Now(), 1, 0)},
		{
			"latitude out of range",
			EventData{
				EventType: models.EventDriving,
				Timestamp: time.Now(),
				Duration:  1,
				LocationData: LocationData{
					Address:   "Bad Coords",
					Latitude:  floatPtr(91),
					Longitude: floatPtr(0),
				},
			},
		},
	}

	for _, tc := range cases {
		if _, err := CreateTripEvent(db, trip.ID, tc.data); err == nil {
			t.Errorf("%s: expected an error", tc.name)
		}
	}

	var count int64
	if err := db.Model(&models.TripEvent{}).Count(&count).Error; err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no events persisted, got %d", count)
	}
}
