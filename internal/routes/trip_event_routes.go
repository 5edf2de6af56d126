package routes

import (
	"eld_tracker/internal/controllers"

	"github.com/gin-gonic/gin"
)

func TripEventRoutes(r *gin.Engine) {
	events := r.Group("/trip-events")
	{
		events.POST("", controllers.CreateTripEvent)
		events.GET("", controllers.ListTripEvents)
		events.GET("/recent", controllers.RecentTripEvents)
		events.GET("/:id", controllers.GetTripEvent)
		events.PUT("/:id", controllers.UpdateTripEvent)
		events.DELETE("/:id", controllers.DeleteTripEvent)
	}
}
