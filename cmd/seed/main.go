// Command seed fills the database with random development data: locations,
// drivers, carriers, vehicles and trips with a handful of events each.
// Events go through the event service so the stored trip totals stay
// consistent with the aggregation contract.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"gorm.io/gorm"

	"eld_tracker/internal/config"
	"eld_tracker/internal/models"
	"eld_tracker/internal/services"
)

func main() {
	num := flag.Int("num", 10, "number of trips to generate")
	flag.Parse()

	config.InitDB()
	db := config.GetDB()

	log.Printf("Starting seed data generation for %d trips...", *num)

	log.Println("Generating Locations...")
	locations := createLocations(db, *num*5)

	log.Println("Generating Drivers...")
	drivers := createDrivers(db, *num)

	log.Println("Generating Carriers...")
	numCarriers := *num / 2
	if numCarriers < 1 {
		numCarriers = 1
	}
	carriers := createCarriers(db, numCarriers)

	log.Println("Generating Vehicles...")
	vehicles := createVehicles(db, carriers, *num)

	log.Println("Generating Trips...")
	createTrips(db, drivers, vehicles, locations, *num)

	log.Printf("Seed data generation complete! %d trips created.", *num)
}

func createLocations(db *gorm.DB, num int) []models.Location {
	for i := 0; i < num; i++ {
		addr := gofakeit.Address()
		data := services.LocationData{
			Address:    addr.Street,
			Latitude:   &addr.Latitude,
			Longitude:  &addr.Longitude,
			City:       addr.City,
			State:      addr.State,
			Country:    "USA",
			PostalCode: addr.Zip,
		}
		if _, err := services.GetOrCreateLocation(db, data); err != nil {
			log.Fatalf("seeding locations failed: %v", err)
		}
	}
	var locations []models.Location
	if err := db.Find(&locations).Error; err != nil {
		log.Fatalf("loading seeded locations failed: %v", err)
	}
	return locations
}

func createDrivers(db *gorm.DB, num int) []models.Driver {
	for i := 0; i < num; i++ {
		driver := models.Driver{
			DriverInitial: strings.ToUpper(gofakeit.LetterN(2)),
			FullName:      gofakeit.Name(),
			LicenseNumber: fmt.Sprintf("LIC%07d", gofakeit.Number(0, 9999999)),
			PhoneNumber:   gofakeit.Phone(),
			Email:         gofakeit.Email(),
		}
		// Random two-letter initials collide quickly; skip duplicates the
		// same way the original seeder ignores conflicts.
		db.Where(models.Driver{DriverInitial: driver.DriverInitial}).FirstOrCreate(&driver)
	}
	var drivers []models.Driver
	if err := db.Find(&drivers).Error; err != nil {
		log.Fatalf("loading seeded drivers failed: %v", err)
	}
	return drivers
}

func createCarriers(db *gorm.DB, num int) []models.Carrier {
	for i := 0; i < num; i++ {
		carrier := models.Carrier{
			Name:      gofakeit.Company(),
			DOTNumber: fmt.Sprintf("DOT%05d", gofakeit.Number(0, 99999)),
			MCNumber:  fmt.Sprintf("MC%05d", gofakeit.Number(0, 99999)),
			Address:   gofakeit.Address().Address,
			Phone:     gofakeit.Phone(),
		}
		db.Where(models.Carrier{Name: carrier.Name}).FirstOrCreate(&carrier)
	}
	var carriers []models.Carrier
	if err := db.Find(&carriers).Error; err != nil {
		log.Fatalf("loading seeded carriers failed: %v", err)
	}
	return carriers
}

func createVehicles(db *gorm.DB, carriers []models.Carrier, num int) []models.Vehicle {
	for i := 0; i < num; i++ {
		year := gofakeit.Number(2000, 2024)
		vin := fmt.Sprintf("VIN%011d", gofakeit.Number(0, 99999999999))
		vehicle := models.Vehicle{
			TruckNumber:  fmt.Sprintf("TRK-%04d", gofakeit.Number(0, 9999)),
			Make:         gofakeit.CarMaker(),
			VehicleModel: gofakeit.CarModel(),
			Year:         &year,
			VIN:          &vin,
			LicensePlate: fmt.Sprintf("%s-%04d", strings.ToUpper(gofakeit.LetterN(2)), gofakeit.Number(0, 9999)),
			CarrierID:    carriers[rand.Intn(len(carriers))].ID,
		}
		db.Where(models.Vehicle{TruckNumber: vehicle.TruckNumber}).FirstOrCreate(&vehicle)
	}
	var vehicles []models.Vehicle
	if err := db.Find(&vehicles).Error; err != nil {
		log.Fatalf("loading seeded vehicles failed: %v", err)
	}
	return vehicles
}

func createTrips(db *gorm.DB, drivers []models.Driver, vehicles []models.Vehicle, locations []models.Location, num int) {
	cycleRules := []string{models.CycleRule70, models.CycleRule60}

	for i := 0; i < num; i++ {
		driver := drivers[rand.Intn(len(drivers))]
		trip := models.Trip{
			Date:                gofakeit.DateRange(time.Now().AddDate(0, -6, 0), time.Now()),
			DriverID:            driver.ID,
			VehicleID:           vehicles[rand.Intn(len(vehicles))].ID,
			ShipperAndCommodity: gofakeit.BS(),
			CycleRule:           cycleRules[rand.Intn(len(cycleRules))],
			Remarks:             gofakeit.Sentence(12),
			IsCompleted:         gofakeit.Bool(),
		}
		if rand.Intn(2) == 1 {
			coDriver := drivers[rand.Intn(len(drivers))]
			if coDriver.ID != driver.ID {
				trip.CoDriverID = &coDriver.ID
			}
		}
		if err := db.Create(&trip).Error; err != nil {
			log.Fatalf("seeding trips failed: %v", err)
		}
		createTripEvents(db, trip, locations)
	}
}

func createTripEvents(db *gorm.DB, trip models.Trip, locations []models.Location) {
	numEvents := rand.Intn(8) + 3
	timestamp := time.Now()

	for i := 0; i < numEvents; i++ {
		location := locations[rand.Intn(len(locations))]
		eventType := models.EventTypes[rand.Intn(len(models.EventTypes))]

		duration := 0.0
		switch eventType {
		case models.EventDriving, models.EventOnDuty, models.EventOffDuty, models.EventSleeper:
			duration = gofakeit.Float64Range(0.5, 5.0)
		}
		miles := 0.0
		if eventType == models.EventDriving {
			miles = gofakeit.Float64Range(10.0, 300.0)
		}

		data := services.EventData{
			EventType:   eventType,
			Timestamp:   timestamp,
			Duration:    duration,
			MilesDriven: miles,
			Notes:       gofakeit.Sentence(8),
			LocationData: services.LocationData{
				Address:    location.Address,
				Latitude:   &location.Latitude,
				Longitude:  &location.Longitude,
				City:       location.City,
				State:      location.State,
				Country:    location.Country,
				PostalCode: location.PostalCode,
			},
		}
		if _, err := services.CreateTripEvent(db, trip.ID, data); err != nil {
			log.Fatalf("seeding trip events failed: %v", err)
		}

		step := duration
		if step < 1 {
			step = 1
		}
		timestamp = timestamp.Add(time.Duration(step * float64(time.Hour)))
	}
}
