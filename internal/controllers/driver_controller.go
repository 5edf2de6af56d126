package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"eld_tracker/internal/config"
	"eld_tracker/internal/models"
	"eld_tracker/internal/services"
)

// updateDriverInput defines the fields a client can send to update a driver.
type updateDriverInput struct {
	DriverInitial *string `json:"driver_initial"`
	FullName      *string `json:"full_name"`
	LicenseNumber *string `json:"license_number"`
	PhoneNumber   *string `json:"phone_number"`
	Email         *string `json:"email"`
}

// CreateDriver registers a new driver.
func CreateDriver(c *gin.Context) {
	var input models.Driver
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := config.DB.Create(&input).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "driver_initial and license_number must be unique."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create driver: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"driver": input})
}

// ListDrivers returns all drivers.
func ListDrivers(c *gin.Context) {
	var drivers []models.Driver
	if err := config.DB.Find(&drivers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing drivers: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": drivers})
}

// GetDriver retrieves a driver by ID
func GetDriver(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var driver models.Driver
	if err := config.DB.First(&driver, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

// UpdateDriver modifies driver details for the fields the client supplied.
func UpdateDriver(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var driver models.Driver
	if err := config.DB.First(&driver, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	var input updateDriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if input.DriverInitial != nil {
		driver.DriverInitial = *input.DriverInitial
	}
	if input.FullName != nil {
		driver.FullName = *input.FullName
	}
	if input.LicenseNumber != nil {
		driver.LicenseNumber = *input.LicenseNumber
	}
	if input.PhoneNumber != nil {
		driver.PhoneNumber = *input.PhoneNumber
	}
	if input.Email != nil {
		driver.Email = *input.Email
	}

	if err := config.DB.Save(&driver).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "driver_initial and license_number must be unique."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update driver: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

// DeleteDriver removes a driver along with their primary-driver trips.
func DeleteDriver(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := services.DeleteDriver(config.DB, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Driver deleted."})
}

// DriverTrips lists a driver's trips, newest date first.
func DriverTrips(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var driver models.Driver
	if err := config.DB.First(&driver, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	trips, err := loadTrips(config.DB.Where("driver_id = ?", driver.ID))
	if err != nil {
		logrus.WithError(err).Error("Error listing trips for driver")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch trips."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toTripResponses(trips)})
}

// driverHoursSummary carries the aggregate row for HoursSummary.
type driverHoursSummary struct {
	TotalDrivingHours float64 `json:"total_driving_hours"`
	TotalOnDutyHours  float64 `json:"total_on_duty_hours"`
	TotalMiles        float64 `json:"total_miles"`
	TripCount         int64   `json:"trip_count"`
}

// DriverHoursSummary aggregates a driver's trip totals, optionally limited
// to a date range (date_from/date_to, inclusive).
func DriverHoursSummary(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var driver models.Driver
	if err := config.DB.First(&driver, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	query := config.DB.Model(&models.Trip{}).Where("driver_id = ?", driver.ID)
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

	var summary driverHoursSummary
	err := query.Select(
		"COALESCE(SUM(total_driving_hours), 0) AS total_driving_hours, " +
			"COALESCE(SUM(total_on_duty_hours), 0) AS total_on_duty_hours, " +
			"COALESCE(SUM(total_miles_driving), 0) AS total_miles, " +
			"COUNT(id) AS trip_count").
		Scan(&summary).Error
	if err != nil {
		logrus.WithError(err).Error("Error aggregating driver hours")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not compute hours summary."})
		return
	}
	c.JSON(http.StatusOK, summary)
}
