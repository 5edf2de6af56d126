package routes

import (
	"eld_tracker/internal/controllers"

	"github.com/gin-gonic/gin"
)

func VehicleRoutes(r *gin.Engine) {
	vehicles := r.Group("/vehicles")
	{
		vehicles.POST("", controllers.CreateVehicle)
		vehicles.GET("", controllers.ListVehicles)
		vehicles.GET("/:id", controllers.GetVehicle)
		vehicles.PUT("/:id", controllers.UpdateVehicle)
		vehicles.DELETE("/:id", controllers.DeleteVehicle)
		vehicles.GET("/:id/trips", controllers.VehicleTrips)
	}
}
