package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"eld_tracker/internal/config"
	"eld_tracker/internal/models"
	"eld_tracker/internal/services"
)

// CreateCarrier registers a new carrier.
func CreateCarrier(c *gin.Context) {
	var input models.Carrier
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := config.DB.Create(&input).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Carrier name and dot_number must be unique."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create carrier: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"carrier": input})
}

// ListCarriers lists all carriers with their vehicle counts.
func ListCarriers(c *gin.Context) {
	var carriers []models.Carrier
	if err := config.DB.Preload("Vehicles").Find(&carriers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch carriers"})
		return
	}

	data := make([]gin.H, 0, len(carriers))
	for _, carrier := range carriers {
		data = append(data, carrierView(carrier))
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// GetCarrier retrieves a carrier by ID
func GetCarrier(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var carrier models.Carrier
	if err := config.DB.Preload("Vehicles").First(&carrier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Carrier not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"carrier": carrierView(carrier)})
}

// UpdateCarrier modifies an existing carrier.
func UpdateCarrier(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var carrier models.Carrier
	if err := config.DB.First(&carrier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Carrier not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	var input struct {
		Name      *string `json:"name"`
		DOTNumber *string `json:"dot_number"`
		MCNumber  *string `json:"mc_number"`
		Address   *string `json:"address"`
		Phone     *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if input.Name != nil {
		carrier.Name = *input.Name
	}
	if input.DOTNumber != nil {
		carrier.DOTNumber = *input.DOTNumber
	}
	if input.MCNumber != nil {
		carrier.MCNumber = *input.MCNumber
	}
	if input.Address != nil {
		carrier.Address = *input.Address
	}
	if input.Phone != nil {
		carrier.Phone = *input.Phone
	}

	if err := config.DB.Save(&carrier).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Carrier name and dot_number must be unique."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update carrier: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"carrier": carrier})
}

// DeleteCarrier removes a carrier and cascades through its vehicles.
func DeleteCarrier(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := services.DeleteCarrier(config.DB, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Carrier deleted."})
}

func carrierView(carrier models.Carrier) gin.H {
	return gin.H{
		"id":             carrier.ID,
		"name":           carrier.Name,
		"dot_number":     carrier.DOTNumber,
		"mc_number":      carrier.MCNumber,
		"address":        carrier.Address,
		"phone":          carrier.Phone,
		"vehicles_count": len(carrier.Vehicles),
		"created_at":     carrier.CreatedAt,
	}
}
