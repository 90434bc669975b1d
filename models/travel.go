package models

import "fmt"

// GeoPoint is a WGS84 coordinate.
type GeoPoint struct {
	Lat float64 `bson:"lat" json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `bson:"lng" json:"lng" validate:"gte=-180,lte=180"`
}

// NewGeoPoint validates latitude and longitude ranges.
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	p := GeoPoint{Lat: lat, Lng: lng}
	if err := validate.Struct(p); err != nil {
		return GeoPoint{}, fmt.Errorf("invalid coordinates (%f, %f): %w", lat, lng, err)
	}
	return p, nil
}

// TravelSource tells where a travel estimate came from.
type TravelSource string

const (
	SourceCache              TravelSource = "cache"
	SourceExternalAPI        TravelSource = "external-api"
	SourceHaversine          TravelSource = "haversine"
	SourceVendorNotSupported TravelSource = "vendor-not-supported"
	SourceFallback           TravelSource = "fallback"
)

// TravelEstimate is a one-way trip estimate.
type TravelEstimate struct {
	Minutes int          `json:"minutes"`
	Km      float64      `json:"km"`
	Source  TravelSource `json:"source"`
}
