package travel

import (
	"math"

	"glowslots/models"
)

const earthRadiusKm = 6371

// HaversineKm returns the great-circle distance between two points.
func HaversineKm(a, b models.GeoPoint) float64 {
	dLat := (b.Lat - a.Lat) * (math.Pi / 180)
	dLon := (b.Lng - a.Lng) * (math.Pi / 180)
	lat1Rad := a.Lat * (math.Pi / 180)
	lat2Rad := b.Lat * (math.Pi / 180)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// DriveMinutes converts a straight-line distance into whole driving minutes,
// inflated by multiplier for traffic and signals.
func DriveMinutes(km, speedKmh, multiplier float64) int {
	if km <= 0 || speedKmh <= 0 {
		return 0
	}
	return int(math.Ceil(km * 60 * multiplier / speedKmh))
}
