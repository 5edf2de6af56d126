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

// CreateLocation registers a location. Locations are keyed by address, so
// posting an address that already exists returns the existing row instead
// of a duplicate.
func CreateLocation(c *gin.Context) {
	var input services.LocationData
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	location, err := services.GetOrCreateLocation(config.DB, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"location": location})
}

// ListLocations returns all locations ordered by address.
func ListLocations(c *gin.Context) {
	var locations []models.Location
	if err := config.DB.Order("address asc").Find(&locations).Error; err != nil {
		logrus.WithError(err).Error("Error listing locations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch locations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": locations})
}

// GetLocation retrieves a location by ID
func GetLocation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var location models.Location
	if err := config.DB.First(&location, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": location})
}

// SearchLocations matches addresses against the q parameter, case
// insensitively, capped at 10 rows. An empty q returns an empty list.
func SearchLocations(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"data": []models.Location{}})
		return
	}

	var locations []models.Location
	if err := config.DB.
		Where("LOWER(address) LIKE LOWER(?)", "%"+query+"%").
		Order("address asc").
		Limit(10).
		Find(&locations).Error; err != nil {
		logrus.WithError(err).Error("Error searching locations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not search locations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": locations})
}

// DeleteLocation removes a location and every event logged at it.
func DeleteLocation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := services.DeleteLocation(config.DB, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Location deleted."})
}
