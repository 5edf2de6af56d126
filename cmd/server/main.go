package main

import (
	"log"
	"net/http"

	"eld_tracker/internal/config"
	"eld_tracker/internal/logger"
	"eld_tracker/internal/middleware"
	"eld_tracker/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Setup Gin router (recovery, request logging, request ids)
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := config.ServerAddr()
	log.Printf("🚀 Server running at %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
