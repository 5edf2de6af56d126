package services

import (
	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"gorm.io/gorm"

	"eld_tracker/internal/models"
)

// TripPathGeoJSON renders a trip's event locations, ordered by timestamp,
// as a GeoJSON LineString. Returns nil bytes when the trip has fewer than
// two events, since a line needs at least two points.
func TripPathGeoJSON(db *gorm.DB, tripID uint) ([]byte, error) {
	var events []models.TripEvent
	err := db.Preload("Location").
		Where("trip_id = ?", tripID).
		Order("timestamp asc").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	if len(events) < 2 {
		return nil, nil
	}

	coords := make([]geom.Coord, 0, len(events))
	for _, event := range events {
		coords = append(coords, geom.Coord{event.Location.Longitude, event.Location.Latitude})
	}

	line := geom.NewLineString(geom.XY)
	if _, err := line.SetCoords(coords); err != nil {
		return nil, err
	}
	return gjson.Marshal(line)
}
