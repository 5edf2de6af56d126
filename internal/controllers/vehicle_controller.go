// internal/controllers/vehicle_controller.go
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

// CreateVehicle registers a new vehicle under an existing carrier.
func CreateVehicle(c *gin.Context) {
	var input models.Vehicle
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	var carrier models.Carrier
	if err := config.DB.First(&carrier, input.CarrierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "carrier_id does not reference an existing carrier."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	if err := config.DB.Create(&input).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "truck_number and vin must be unique."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create vehicle: " + err.Error()})
		return
	}
	input.Carrier = carrier
	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicleView(input)})
}

// ListVehicles lists all vehicles with their carrier names.
func ListVehicles(c *gin.Context) {
	var vehicles []models.Vehicle
	if err := config.DB.Preload("Carrier").Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch vehicles"})
		return
	}

	data := make([]gin.H, 0, len(vehicles))
	for _, vehicle := range vehicles {
		data = append(data, vehicleView(vehicle))
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// GetVehicle retrieves a vehicle by ID
func GetVehicle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var vehicle models.Vehicle
	if err := config.DB.Preload("Carrier").First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicleView(vehicle)})
}

// UpdateVehicle modifies vehicle details for the fields the client supplied.
func UpdateVehicle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	var input struct {
		TruckNumber  *string `json:"truck_number"`
		Make         *string `json:"make"`
		Model        *string `json:"model"`
		Year         *int    `json:"year"`
		VIN          *string `json:"vin"`
		LicensePlate *string `json:"license_plate"`
		CarrierID    *uint   `json:"carrier_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if input.TruckNumber != nil {
		vehicle.TruckNumber = *input.TruckNumber
	}
	if input.Make != nil {
		vehicle.Make = *input.Make
	}
	if input.Model != nil {
		vehicle.VehicleModel = *input.Model
	}
	if input.Year != nil {
		vehicle.Year = input.Year
	}
	if input.VIN != nil {
		vehicle.VIN = input.VIN
	}
	if input.LicensePlate != nil {
		vehicle.LicensePlate = *input.LicensePlate
	}
	if input.CarrierID != nil {
		var carrier models.Carrier
		if err := config.DB.First(&carrier, *input.CarrierID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "carrier_id does not reference an existing carrier."})
			return
		}
		vehicle.CarrierID = *input.CarrierID
	}

	if err := config.DB.Save(&vehicle).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "truck_number and vin must be unique."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

// DeleteVehicle removes a vehicle and the trips logged against it.
func DeleteVehicle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := services.DeleteVehicle(config.DB, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted."})
}

// VehicleTrips lists a vehicle's trips, newest date first.
func VehicleTrips(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	trips, err := loadTrips(config.DB.Where("vehicle_id = ?", vehicle.ID))
	if err != nil {
		logrus.WithError(err).Error("Error listing trips for vehicle")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch trips."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toTripResponses(trips)})
}

func vehicleView(vehicle models.Vehicle) gin.H {
	return gin.H{
		"id":            vehicle.ID,
		"truck_number":  vehicle.TruckNumber,
		"make":          vehicle.Make,
		"model":         vehicle.VehicleModel,
		"year":          vehicle.Year,
		"vin":           vehicle.VIN,
		"license_plate": vehicle.LicensePlate,
		"carrier_id":    vehicle.CarrierID,
		"carrier_name":  vehicle.Carrier.Name,
		"created_at":    vehicle.CreatedAt,
	}
}
