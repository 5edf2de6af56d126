package routes

import (
	"eld_tracker/internal/controllers"

	"github.com/gin-gonic/gin"
)

func CarrierRoutes(r *gin.Engine) {
	carriers := r.Group("/carriers")
	{
		carriers.POST("", controllers.CreateCarrier)
		carriers.GET("", controllers.ListCarriers)
		carriers.GET("/:id", controllers.GetCarrier)
		carriers.PUT("/:id", controllers.UpdateCarrier)
		carriers.DELETE("/:id", controllers.DeleteCarrier)
	}
}
