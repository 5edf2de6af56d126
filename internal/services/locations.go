package services

import (
	"fmt"

	"gorm.io/gorm"

	"eld_tracker/internal/models"
)

// ValidationError marks input problems the client can correct. Controllers
// map it to a 400 response instead of a 500.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// LocationData is the embedded location payload accepted wherever an event
// or request carries its own address instead of a location id.
type LocationData struct {
	Address    string   `json:"address" binding:"required"`
	Latitude   *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude  *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	Country    string   `json:"country"`
	PostalCode string   `json:"postal_code"`
}

// Validate re-checks the binding constraints for callers that build
// LocationData in code rather than from a bound request body.
func (l *LocationData) Validate() error {
	if l.Address == "" {
		return validationErrorf("location address is required")
	}
	if l.Latitude == nil || *l.Latitude < -90 || *l.Latitude > 90 {
		return validationErrorf("latitude must be between -90 and 90")
	}
	if l.Longitude == nil || *l.Longitude < -180 || *l.Longitude > 180 {
		return validationErrorf("longitude must be between -180 and 180")
	}
	return nil
}

// GetOrCreateLocation resolves location data to a row, keyed by address.
// A payload whose address matches an existing location reuses that row;
// the remaining fields only apply when a new row is created.
func GetOrCreateLocation(db *gorm.DB, data LocationData) (*models.Location, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}

	country := data.Country
	if country == "" {
		country = "USA"
	}

	var location models.Location
	err := db.Where(models.Location{Address: data.Address}).
		Attrs(models.Location{
			Latitude:   *data.Latitude,
			Longitude:  *data.Longitude,
			City:       data.City,
			State:      data.State,
			Country:    country,
			PostalCode: data.PostalCode,
		}).
		FirstOrCreate(&location).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}
