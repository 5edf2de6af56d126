package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"eld_tracker/internal/config"
	"eld_tracker/internal/models"
	"eld_tracker/internal/services"
)

// tripEventCreatePayload is the standalone event creation body: the shared
// event payload plus the trip it belongs to.
type tripEventCreatePayload struct {
	TripID uint `json:"trip_id" binding:"required"`
	services.EventData
}

// updateTripEventInput defines the fields a client can change on an event.
type updateTripEventInput struct {
	EventType   *string    `json:"event_type"`
	Timestamp   *time.Time `json:"timestamp"`
	Duration    *float64   `json:"duration"`
	MilesDriven *float64   `json:"miles_driven"`
	Notes       *string    `json:"notes"`
}

// CreateTripEvent persists one event and recalculates its trip's totals.
func CreateTripEvent(c *gin.Context) {
	var payload tripEventCreatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	event, err := services.CreateTripEvent(config.DB, payload.TripID, payload.EventData)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"event": toTripEventResponse(*event)})
}

// ListTripEvents returns events in timestamp order, optionally filtered to
// one trip via ?trip=.
func ListTripEvents(c *gin.Context) {
	query := config.DB.Preload("Location").Order("timestamp asc")
	if tripParam := c.Query("trip"); tripParam != "" {
		tripID, err := strconv.ParseUint(tripParam, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip filter format."})
			return
		}
		query = query.Where("trip_id = ?", uint(tripID))
	}

	var events []models.TripEvent
	if err := query.Find(&events).Error; err != nil {
		logrus.WithError(err).Error("Error listing trip events")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch trip events."})
		return
	}

	data := make([]TripEventResponse, 0, len(events))
	for _, event := range events {
		data = append(data, toTripEventResponse(event))
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// GetTripEvent retrieves an event by ID
func GetTripEvent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var event models.TripEvent
	if err := config.DB.Preload("Location").First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip event not found."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": toTripEventResponse(event)})
}

// UpdateTripEvent modifies an event and recalculates its trip's totals,
// since duration, mileage and type changes all feed the stored sums.
func UpdateTripEvent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var event models.TripEvent
	if err := config.DB.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip event not found."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	var input updateTripEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if input.EventType != nil {
		valid := false
		for _, t := range models.EventTypes {
			if *input.EventType == t {
				valid = true
				break
			}
		}
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown event_type."})
			return
		}
		event.EventType = *input.EventType
	}
	if input.Timestamp != nil {
		event.Timestamp = *input.Timestamp
	}
	if input.Duration != nil {
		if *input.Duration < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "duration must not be negative."})
			return
		}
		event.Duration = *input.Duration
	}
	if input.MilesDriven != nil {
		if *input.MilesDriven < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "miles_driven must not be negative."})
			return
		}
		event.MilesDriven = *input.MilesDriven
	}
	if input.Notes != nil {
		event.Notes = *input.Notes
	}

	if err := config.DB.Save(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update trip event: " + err.Error()})
		return
	}

	if err := services.RecalculateTripTotals(config.DB, event.TripID); err != nil {
		logrus.WithError(err).WithField("trip_id", event.TripID).
			Warn("trip totals recompute failed; stored totals are stale")
	}

	if err := config.DB.Preload("Location").First(&event, event.ID).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"event": toTripEventResponse(event)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": event})
}

// DeleteTripEvent removes an event and recalculates its trip's totals.
func DeleteTripEvent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := services.DeleteTripEvent(config.DB, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trip event deleted."})
}

// RecentTripEvents lists events from the last N hours (default 24), newest
// first, capped at 50, optionally filtered to one trip via ?trip=.
func RecentTripEvents(c *gin.Context) {
	hours := 24
	if hoursParam := c.Query("hours"); hoursParam != "" {
		parsed, err := strconv.Atoi(hoursParam)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "hours must be a positive integer."})
			return
		}
		hours = parsed
	}
	since := time.Now().Add(-time.Duration(hours) * time.Hour)

	query := config.DB.Preload("Location").
		Where("timestamp >= ?", since).
		Order("timestamp desc").
		Limit(50)
	if tripParam := c.Query("trip"); tripParam != "" {
		tripID, err := strconv.ParseUint(tripParam, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip filter format."})
			return
		}
		query = query.Where("trip_id = ?", uint(tripID))
	}

	var events []models.TripEvent
	if err := query.Find(&events).Error; err != nil {
		logrus.WithError(err).Error("Error listing recent trip events")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch recent events."})
		return
	}

	data := make([]TripEventResponse, 0, len(events))
	for _, event := range events {
		data = append(data, toTripEventResponse(event))
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}
