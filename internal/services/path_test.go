package services

import (
	"encoding/json"
	"testing"
	"time"

	"eld_tracker/internal/models"
)

func pathEvent(address string, ts time.Time, lat, lng float64) EventData {
	return EventData{
		EventType: models.EventOther,
		Timestamp: ts,
		LocationData: LocationData{
			Address:   address,
			Latitude:  floatPtr(lat),
			Longitude: floatPtr(lng),
		},
	}
}

func TestTripPathLineStringFollowsTimestampOrder(t *testing.T) {
	db := setupTestDB(t)
	trip := seedTrip(t, db)
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	// Inserted out of order; the path must still follow the timestamps.
	stops := []struct {
		address  string
		offset   time.Duration
		lat, lng float64
	}{
		{"300 Third St", 4 * time.Hour, 41.0, -89.0},
		{"100 First St", 0, 39.0, -87.0},
		{"200 Second St", 2 * time.Hour, 40.0, -88.0},
	}
	for _, stop := range stops {
		if _, err := CreateTripEvent(db, trip.ID, pathEvent(stop.address, base.Add(stop.offset), stop.lat, stop.lng)); err != nil {
			t.Fatalf("CreateTripEvent failed: %v", err)
		}
	}

	raw, err := TripPathGeoJSON(db, trip.ID)
	if err != nil {
		t.Fatalf("TripPathGeoJSON failed: %v", err)
	}
	var path struct {
		Type        string       `json:"type"`
		Coordinates [][2]float64 `json:"coordinates"`
	}
	if err := json.Unmarshal(raw, &path); err != nil {
		t.Fatalf("Failed to decode path: %v", err)
	}
	if path.Type != "LineString" {
		t.Errorf("type = %q, want LineString", path.Type)
	}
	want := [][2]float64{{-87.0, 39.0}, {-88.0, 40.0}, {-89.0, 41.0}}
	if len(path.Coordinates) != len(want) {
		t.Fatalf("expected %d coordinates, got %d", len(want), len(path.Coordinates))
	}
	for i, coord := range path.Coordinates {
		if coord != want[i] {
			t.Errorf("coordinate %d = %v, want %v (lng, lat)", i, coord, want[i])
		}
	}
}

func TestTripPathNilBelowTwoEvents(t *testing.T) {
	db := setupTestDB(t)
	trip := seedTrip(t, db)

	raw, err := TripPathGeoJSON(db, trip.ID)
	if err != nil {
		t.Fatalf("TripPathGeoJSON failed: %v", err)
	}
	if raw != nil {
		t.Errorf("expected nil path without events, got %s", raw)
	}

	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	if _, err := CreateTripEvent(db, trip.ID, pathEvent("100 First St", base, 39.0, -87.0)); err != nil {
		t.Fatalf("CreateTripEvent failed: %v", err)
	}
	raw, err = TripPathGeoJSON(db, trip.ID)
	if err != nil {
		t.Fatalf("TripPathGeoJSON failed: %v", err)
	}
	if raw != nil {
		t.Errorf("expected nil path with a single event, got %s", raw)
	}
}
