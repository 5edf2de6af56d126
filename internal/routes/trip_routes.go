package routes

import (
	"eld_tracker/internal/controllers"

	"github.com/gin-gonic/gin"
)

func TripRoutes(r *gin.Engine) {
	trips := r.Group("/trips")
	{
		trips.POST("", controllers.CreateTrip)
		trips.GET("", controllers.ListTrips)
		trips.GET("/statistics", controllers.TripStatistics)
		trips.GET("/active", controllers.ActiveTrips)
		trips.GET("/:id", controllers.GetTrip)
		trips.PUT("/:id", controllers.UpdateTrip)
		trips.DELETE("/:id", controllers.DeleteTrip)
		trips.POST("/:id/add-event", controllers.AddTripEvent)
		trips.POST("/:id/complete", controllers.CompleteTrip)
		trips.GET("/:id/path", controllers.TripPath)
	}
}
