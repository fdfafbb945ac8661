package models

import (
	"strconv"
	"strings"
)

// Location represents a geographical location with latitude and longitude coordinates.
type Location struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// ParseCoordinates reads a "lat,lng" label. Free-text labels return ok=false.
func ParseCoordinates(label string) (Location, bool) {
	parts := strings.Split(label, ",")
	if len(parts) != 2 {
		return Location{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Location{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Location{}, false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return Location{}, false
	}
	return Location{Lat: lat, Lng: lng}, true
}
