package routes

import (
	"eld_tracker/internal/controllers"

	"github.com/gin-gonic/gin"
)

func DriverRoutes(r *gin.Engine) {
	drivers := r.Group("/drivers")
	{
		drivers.POST("", controllers.CreateDriver)
		drivers.GET("", controllers.ListDrivers)
		drivers.GET("/:id", controllers.GetDriver)
		drivers.PUT("/:id", controllers.UpdateDriver)
		drivers.DELETE("/:id", controllers.DeleteDriver)
		drivers.GET("/:id/trips", controllers.DriverTrips)
		drivers.GET("/:id/hours-summary", controllers.DriverHoursSummary)
	}
}
