package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"eld_tracker/internal/middleware"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())
	r.Use(middleware.RequestID())

	LocationRoutes(r)
	DriverRoutes(r)
	CarrierRoutes(r)
	VehicleRoutes(r)
	TripRoutes(r)
	TripEventRoutes(r)

	return r
}
