package routes

import (
	"eld_tracker/internal/controllers"

	"github.com/gin-gonic/gin"
)

func LocationRoutes(r *gin.Engine) {
	locations := r.Group("/locations")
	{
		locations.POST("", controllers.CreateLocation)
		locations.GET("", controllers.ListLocations)
		locations.GET("/search", controllers.SearchLocations)
		locations.GET("/:id", controllers.GetLocation)
		locations.DELETE("/:id", controllers.DeleteLocation)
	}
}
