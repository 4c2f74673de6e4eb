package domain

import "math"

// Mean Earth radius in meters, used for great-circle distances.
const earthRadiusMeters = 6371000.0

// Immutable geographic coordinate (latitude, longitude).
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// DistanceTo returns the great-circle distance in meters between two
// coordinates using the haversine formula.
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	lat1 := toRadians(c.Latitude)
	lat2 := toRadians(other.Latitude)
	dLat := toRadians(other.Latitude - c.Latitude)
	dLon := toRadians(other.Longitude - c.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
