package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"eld_tracker/internal/config"
	"eld_tracker/internal/models"
	"eld_tracker/internal/services"
)

// updateTripInput defines the client-settable trip fields. The derived
// totals are deliberately absent: those only change through event writes.
type updateTripInput struct {
	Date                *string  `json:"date"`
	CoDriverID          *uint    `json:"co_driver_id"`
	ShipperAndCommodity *string  `json:"shipper_and_commodity"`
	CycleRule           *string  `json:"cycle_rule"`
	TotalMileageToday   *float64 `json:"total_mileage_today"`
	Remarks             *string  `json:"remarks"`
	IsCompleted         *bool    `json:"is_completed"`
}

// CreateTrip runs the intake flow: resolve or create the driver, carrier
// and vehicle from the request, persist the trip and expand legacy
// locations plus initial events, all atomically.
func CreateTrip(c *gin.Context) {
	var req services.TripCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	intake := services.NewTripIntake(config.DB)
	trip, err := intake.Create(req)
	if err != nil {
		writeError(c, err)
		return
	}

	full, err := loadTrip(config.DB, trip.ID)
	if err != nil {
		logrus.WithError(err).Error("Error reloading created trip")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Trip created but could not be reloaded."})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"trip": toTripResponse(*full)})
}

// ListTrips returns all trips, newest date first.
func ListTrips(c *gin.Context) {
	trips, err := loadTrips(config.DB)
	if err != nil {
		logrus.WithError(err).Error("Error listing trips")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch trips."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toTripResponses(trips)})
}

// GetTrip retrieves a trip by ID
func GetTrip(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	trip, err := loadTrip(config.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": toTripResponse(*trip)})
}

// UpdateTrip modifies the client-settable trip fields.
func UpdateTrip(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var trip models.Trip
	if err := config.DB.First(&trip, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	var input updateTripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if input.Date != nil {
		date, err := time.Parse("2006-01-02", *input.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted YYYY-MM-DD."})
			return
		}
		trip.Date = date
	}
	if input.CoDriverID != nil {
		var coDriver models.Driver
		if err := config.DB.First(&coDriver, *input.CoDriverID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "co_driver_id does not reference an existing driver."})
			return
		}
		trip.CoDriverID = input.CoDriverID
	}
	if input.ShipperAndCommodity != nil {
		trip.ShipperAndCommodity = *input.ShipperAndCommodity
	}
	if input.CycleRule != nil {
		if *input.CycleRule != models.CycleRule70 && *input.CycleRule != models.CycleRule60 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cycle_rule must be 70hr/8day or 60hr/7day."})
			return
		}
		trip.CycleRule = *input.CycleRule
	}
	if input.TotalMileageToday != nil {
		if *input.TotalMileageToday < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "total_mileage_today must not be negative."})
			return
		}
		trip.TotalMileageToday = *input.TotalMileageToday
	}
	if input.Remarks != nil {
		trip.Remarks = *input.Remarks
	}
	if input.IsCompleted != nil {
		trip.IsCompleted = *input.IsCompleted
	}

	if err := config.DB.Save(&trip).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update trip: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

// DeleteTrip removes a trip and all of its events.
func DeleteTrip(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := services.DeleteTrip(config.DB, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trip deleted."})
}

// AddTripEvent appends one event to a trip and recalculates its totals.
func AddTripEvent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var trip models.Trip
	if err := config.DB.First(&trip, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	var data services.EventData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	event, err := services.CreateTripEvent(config.DB, trip.ID, data)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"event": toTripEventResponse(*event)})
}

// CompleteTrip marks a trip as completed.
func CompleteTrip(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var trip models.Trip
	if err := config.DB.First(&trip, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	trip.IsCompleted = true
	if err := config.DB.Save(&trip).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete trip: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Trip marked as completed"})
}

// tripStatistics carries the aggregate row for TripStatistics.
type tripStatistics struct {
	TotalTrips           int64   `json:"total_trips"`
	CompletedTrips       int64   `json:"completed_trips"`
	TotalMiles           float64 `json:"total_miles"`
	TotalDrivingHoursSum float64 `json:"total_driving_hours_sum"`
	AvgMilesPerTrip      float64 `json:"avg_miles_per_trip"`
	AvgDrivingHours      float64 `json:"avg_driving_hours"`
}

// TripStatistics aggregates counts, sums and averages across trips,
// optionally limited to a date range. The database does the math.
func TripStatistics(c *gin.Context) {
	query := config.DB.Model(&models.Trip{})
	if from, present, ok := parseDateQuery(c, "date_from"); !ok {
		return
	} else if present {
		query = query.Where("date >= ?", from)
	}
	if to, present, ok := parseDateQuery(c, "date_to"); !ok {
		return
	} else if present {
		query = query.Where("date <= ?", to)
	}

	var stats tripStatistics
	err := query.Select(
		"COUNT(id) AS total_trips, " +
			"COALESCE(SUM(CASE WHEN is_completed THEN 1 ELSE 0 END), 0) AS completed_trips, " +
			"COALESCE(SUM(total_miles_driving), 0) AS total_miles, " +
			"COALESCE(SUM(total_driving_hours), 0) AS total_driving_hours_sum, " +
			"COALESCE(AVG(total_miles_driving), 0) AS avg_miles_per_trip, " +
			"COALESCE(AVG(total_driving_hours), 0) AS avg_driving_hours").
		Scan(&stats).Error
	if err != nil {
		logrus.WithError(err).Error("Error aggregating trip statistics")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not compute statistics."})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ActiveTrips lists trips that have not been marked completed.
func ActiveTrips(c *gin.Context) {
	trips, err := loadTrips(config.DB.Where("is_completed = ?", false))
	if err != nil {
		logrus.WithError(err).Error("Error listing active trips")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch active trips."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toTripResponses(trips)})
}

// TripPath returns the trip's event locations as a GeoJSON LineString, or a
// null path when the trip has fewer than two events.
func TripPath(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var trip models.Trip
	if err := config.DB.First(&trip, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	path, err := services.TripPathGeoJSON(config.DB, trip.ID)
	if err != nil {
		logrus.WithError(err).Error("Error building trip path")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build trip path."})
		return
	}
	if path == nil {
		c.JSON(http.StatusOK, gin.H{"trip_id": trip.ID, "path": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip_id": trip.ID, "path": json.RawMessage(path)})
}
