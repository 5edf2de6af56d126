package controllers

import (
	"time"

	"gorm.io/gorm"

	"eld_tracker/internal/models"
)

// LocationView is the compact {address, lat, lng} shape the legacy
// current/pickup/dropoff fields use.
type LocationView struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// TripEventResponse mirrors a trip event with its location denormalized for
// API output.
type TripEventResponse struct {
	ID              uint             `json:"id"`
	TripID          uint             `json:"trip_id"`
	EventType       string           `json:"event_type"`
	Timestamp       time.Time        `json:"timestamp"`
	Duration        float64          `json:"duration"`
	MilesDriven     float64          `json:"miles_driven"`
	Notes           string           `json:"notes"`
	LocationID      uint             `json:"location_id"`
	LocationAddress string           `json:"location_address"`
	LocationData    *models.Location `json:"location_data,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// TripResponse is the full trip shape: the stored row plus the derived
// fields computed from its events.
type TripResponse struct {
	ID           uint   `json:"id"`
	Date         string `json:"date"`
	DriverID     uint   `json:"driver_id"`
	DriverName   string `json:"driver_name"`
	CoDriverID   *uint  `json:"co_driver_id"`
	CoDriverName string `json:"co_driver_name"`
	VehicleID    uint   `json:"vehicle_id"`
	VehicleInfo  string `json:"vehicle_info"`
	CarrierName  string `json:"carrier_name"`

	ShipperAndCommodity string `json:"shipper_and_commodity"`
	CycleRule           string `json:"cycle_rule"`

	TotalMilesDriving float64 `json:"total_miles_driving"`
	TotalMileageToday float64 `json:"total_mileage_today"`
	TotalDrivingHours float64 `json:"total_driving_hours"`
	TotalOnDutyHours  float64 `json:"total_on_duty_hours"`
	TotalOffDutyHours float64 `json:"total_off_duty_hours"`
	TotalSleeperHours float64 `json:"total_sleeper_hours"`
	CycleHoursUsed    float64 `json:"cycle_hours_used"`

	Remarks     string `json:"remarks"`
	IsCompleted bool   `json:"is_completed"`

	Events      []TripEventResponse `json:"events"`
	EventsCount int                 `json:"events_count"`

	OriginLocation      *models.Location `json:"origin_location"`
	DestinationLocation *models.Location `json:"destination_location"`
	CurrentLocation     *LocationView    `json:"current_location"`
	PickupLocation      *LocationView    `json:"pickup_location"`
	DropoffLocation     *LocationView    `json:"dropoff_location"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// loadTrips runs a trip query with every association the response shape
// needs, events ordered by timestamp, newest trips first.
func loadTrips(query *gorm.DB) ([]models.Trip, error) {
	var trips []models.Trip
	err := query.
		Preload("Driver").
		Preload("CoDriver").
		Preload("Vehicle").
		Preload("Vehicle.Carrier").
		Preload("Events", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp asc")
		}).
		Preload("Events.Location").
		Order("date desc").
		Order("created_at desc").
		Find(&trips).Error
	return trips, err
}

// loadTrip fetches one trip with the same association set as loadTrips.
func loadTrip(db *gorm.DB, id uint) (*models.Trip, error) {
	var trip models.Trip
	err := db.
		Preload("Driver").
		Preload("CoDriver").
		Preload("Vehicle").
		Preload("Vehicle.Carrier").
		Preload("Events", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp asc")
		}).
		Preload("Events.Location").
		First(&trip, id).Error
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func toTripResponses(trips []models.Trip) []TripResponse {
	responses := make([]TripResponse, 0, len(trips))
	for _, trip := range trips {
		responses = append(responses, toTripResponse(trip))
	}
	return responses
}

// toTripResponse shapes a trip whose associations were loaded by loadTrip /
// loadTrips (events sorted by timestamp ascending).
func toTripResponse(trip models.Trip) TripResponse {
	response := TripResponse{
		ID:                  trip.ID,
		Date:                trip.Date.Format("2006-01-02"),
		DriverID:            trip.DriverID,
		DriverName:          trip.Driver.FullName,
		CoDriverID:          trip.CoDriverID,
		VehicleID:           trip.VehicleID,
		VehicleInfo:         trip.Vehicle.TruckNumber,
		CarrierName:         trip.Vehicle.Carrier.Name,
		ShipperAndCommodity: trip.ShipperAndCommodity,
		CycleRule:           trip.CycleRule,
		TotalMilesDriving:   trip.TotalMilesDriving,
		TotalMileageToday:   trip.TotalMileageToday,
		TotalDrivingHours:   trip.TotalDrivingHours,
		TotalOnDutyHours:    trip.TotalOnDutyHours,
		TotalOffDutyHours:   trip.TotalOffDutyHours,
		TotalSleeperHours:   trip.TotalSleeperHours,
		CycleHoursUsed:      trip.CycleHoursUsed(),
		Remarks:             trip.Remarks,
		IsCompleted:         trip.IsCompleted,
		EventsCount:         len(trip.Events),
		CreatedAt:           trip.CreatedAt,
		UpdatedAt:           trip.UpdatedAt,
	}
	if trip.CoDriver != nil {
		response.CoDriverName = trip.CoDriver.FullName
	}

	response.Events = make([]TripEventResponse, 0, len(trip.Events))
	for _, event := range trip.Events {
		response.Events = append(response.Events, toTripEventResponse(event))
	}

	origin := originLocation(trip.Events)
	destination := destinationLocation(trip.Events)
	response.OriginLocation = origin
	response.DestinationLocation = destination

	// Backward-compatible views: current = latest event's location,
	// pickup = origin, dropoff = destination.
	if len(trip.Events) > 0 {
		latest := trip.Events[len(trip.Events)-1].Location
		response.CurrentLocation = &LocationView{
			Address: latest.Address,
			Lat:     latest.Latitude,
			Lng:     latest.Longitude,
		}
	}
	if origin != nil {
		response.PickupLocation = &LocationView{
			Address: origin.Address,
			Lat:     origin.Latitude,
			Lng:     origin.Longitude,
		}
	}
	if destination != nil {
		response.DropoffLocation = &LocationView{
			Address: destination.Address,
			Lat:     destination.Latitude,
			Lng:     destination.Longitude,
		}
	}
	return response
}

func toTripEventResponse(event models.TripEvent) TripEventResponse {
	location := event.Location
	return TripEventResponse{
		ID:              event.ID,
		TripID:          event.TripID,
		EventType:       event.EventType,
		Timestamp:       event.Timestamp,
		Duration:        event.Duration,
		MilesDriven:     event.MilesDriven,
		Notes:           event.Notes,
		LocationID:      event.LocationID,
		LocationAddress: location.Address,
		LocationData:    &location,
		CreatedAt:       event.CreatedAt,
		UpdatedAt:       event.UpdatedAt,
	}
}

// originLocation is the location of the earliest event, nil without events.
func originLocation(events []models.TripEvent) *models.Location {
	if len(events) == 0 {
		return nil
	}
	location := events[0].Location
	return &location
}

// destinationLocation is the location of the most recent event whose type is
// one of the legacy driving boundary markers. No current event_type value
// matches them, so this stays nil in practice; kept to mirror the historical
// behavior the mobile clients were built against.
func destinationLocation(events []models.TripEvent) *models.Location {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].EventType == "driving_start" || events[i].EventType == "driving_end" {
			location := events[i].Location
			return &location
		}
	}
	return nil
}
